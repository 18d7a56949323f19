// Package main содержит точку входа CLI-клиента projectctl.
//
// Версия и дата сборки передаются через -ldflags:
//
//	go build -ldflags "-X main.buildVersion=v1.0.0 -X main.buildDate=$(date +%F)" ./cmd/projectctl
package main

import "github.com/IvanChernomyrdin/projectkeeper/internal/agent/cli"

var (
	// buildVersion содержит версию приложения, передаваемую при сборке.
	buildVersion = "dev"
	// buildDate содержит дату сборки приложения.
	buildDate = "unknown"
)

func main() {
	cli.Execute(buildVersion, buildDate)
}
