// Package config хранит локальное состояние projectctl между запусками.
//
// Единственный файл — учётные данные в домашней директории пользователя:
//
//	~/.projectkeeper/credentials.json
//
// Файл пишется с правами 0600, директория — 0700.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	dirName  = ".projectkeeper"
	fileName = "credentials.json"
)

// Credentials — то, что остаётся после register/login.
//
// Token — JWT сервера, отправляется в Authorization: Bearer.
// Email и ServerURL нужны только для подсказок пользователю.
type Credentials struct {
	Token     string `json:"token"`
	Email     string `json:"email,omitempty"`
	ServerURL string `json:"server_url,omitempty"`
}

// LoggedIn сообщает, сохранён ли токен.
func (c *Credentials) LoggedIn() bool {
	return c != nil && strings.TrimSpace(c.Token) != ""
}

// DefaultPath возвращает <home>/.projectkeeper/credentials.json.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, dirName, fileName), nil
}

// Load читает учётные данные из path.
// Отсутствующий файл — не ошибка: возвращаются пустые Credentials.
func Load(path string) (*Credentials, error) {
	b, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return &Credentials{}, nil
	case err != nil:
		return nil, fmt.Errorf("read credentials: %w", err)
	}

	var c Credentials
	if err := json.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse credentials %s: %w", path, err)
	}
	return &c, nil
}

// Save атомарно перезаписывает файл: пишет во временный файл рядом и переименовывает.
func Save(path string, c *Credentials) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create credentials dir: %w", err)
	}
	b, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return fmt.Errorf("write credentials: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("write credentials: %w", err)
	}
	return nil
}

// Clear удаляет файл с учётными данными. Отсутствие файла ошибкой не считается.
func Clear(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
