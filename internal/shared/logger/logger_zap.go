// Package logger содержит общий логгер для server и agent.
//
// Пакет предоставляет Zap-логгер, настроенный на запись в файл с ротацией
// (lumberjack), с опциональным дублированием в stdout, и удобный метод
// для логирования HTTP-запросов.
package logger

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// HTTPLogger представляет обёртку над zap.Logger для логирования HTTP-событий.
//
// Встраивание *zap.Logger позволяет использовать все методы zap напрямую.
type HTTPLogger struct {
	*zap.Logger
}

// Options описывает, куда и в каком виде пишутся логи.
type Options struct {
	Dir        string // каталог логов
	FileName   string // имя файла внутри Dir
	Level      string // debug|info|warn|error
	Format     string // console|json
	Stdout     bool   // дублировать записи в stdout
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// DefaultOptions возвращает настройки по умолчанию:
// файл runtime/logs/http.log, уровень info, текстовый формат.
func DefaultOptions() Options {
	return Options{
		Dir:        filepath.Join("runtime", "logs"),
		FileName:   "http.log",
		Level:      "info",
		Format:     "console",
		MaxSizeMB:  100, // MB ≈ ~300 000 строк
		MaxBackups: 10,
		MaxAgeDays: 30,
		Compress:   true,
	}
}

// NewHTTPLogger создаёт файловый zap-логгер с настройками по умолчанию.
func NewHTTPLogger() *HTTPLogger {
	return New(DefaultOptions())
}

// New создаёт zap-логгер по переданным настройкам.
//
// Пустые поля opts заполняются значениями из DefaultOptions.
// Формат времени: "HH:MM:SS DD.MM.YYYY".
func New(opts Options) *HTTPLogger {
	opts = withDefaults(opts)

	_ = os.MkdirAll(opts.Dir, 0755)

	// lumberjack отвечает за ротацию файлов
	writer := zapcore.AddSync(&lumberjack.Logger{
		Filename:   filepath.Join(opts.Dir, opts.FileName),
		MaxSize:    opts.MaxSizeMB,
		MaxBackups: opts.MaxBackups,
		MaxAge:     opts.MaxAgeDays,
		Compress:   opts.Compress,
	})
	if opts.Stdout {
		writer = zapcore.NewMultiWriteSyncer(writer, zapcore.Lock(os.Stdout))
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = customTimeEncoder

	var encoder zapcore.Encoder
	if strings.EqualFold(opts.Format, "json") {
		encoder = zapcore.NewJSONEncoder(encoderCfg)
	} else {
		encoder = zapcore.NewConsoleEncoder(encoderCfg)
	}

	core := zapcore.NewCore(encoder, writer, parseLevel(opts.Level))

	logger := zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1))

	return &HTTPLogger{Logger: logger}
}

// LogRequest записывает структурированный лог об HTTP-запросе.
//
// method и uri — параметры запроса,
// status — HTTP-статус ответа,
// responseSize — размер ответа в байтах,
// duration — длительность обработки запроса в миллисекундах,
// requestID — идентификатор запроса (может быть пустым).
func (logger *HTTPLogger) LogRequest(method, uri string, status, responseSize int, duration float64, requestID string) {
	fields := []zap.Field{
		zap.String("method", method),
		zap.String("uri", uri),
		zap.Int("status", status),
		zap.Int("response_size", responseSize),
		zap.Float64("duration_ms", duration),
	}
	if requestID != "" {
		fields = append(fields, zap.String("request_id", requestID))
	}
	logger.Info("HTTP request", fields...)
}

func withDefaults(opts Options) Options {
	def := DefaultOptions()
	if opts.Dir == "" {
		opts.Dir = def.Dir
	}
	if opts.FileName == "" {
		opts.FileName = def.FileName
	}
	if opts.Level == "" {
		opts.Level = def.Level
	}
	if opts.Format == "" {
		opts.Format = def.Format
	}
	if opts.MaxSizeMB == 0 {
		opts.MaxSizeMB = def.MaxSizeMB
	}
	if opts.MaxBackups == 0 {
		opts.MaxBackups = def.MaxBackups
	}
	if opts.MaxAgeDays == 0 {
		opts.MaxAgeDays = def.MaxAgeDays
	}
	return opts
}

// parseLevel переводит строковый уровень в zapcore.Level, по умолчанию info.
func parseLevel(s string) zapcore.Level {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(strings.ToLower(strings.TrimSpace(s)))); err != nil {
		return zap.InfoLevel
	}
	return lvl
}

// customTimeEncoder форматирует время для логов в виде "HH:MM:SS DD.MM.YYYY".
func customTimeEncoder(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(t.Format("15:04:05 02.01.2006"))
}
