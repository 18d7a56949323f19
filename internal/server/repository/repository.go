// Package repository реализует доступ к PostgreSQL через database/sql.
//
// Репозитории не содержат бизнес-логики: они переводят ошибки драйвера
// в ошибки из internal/shared/errors и логируют сбои хранилища
// в месте их возникновения.
package repository

import (
	"go.uber.org/zap"

	"github.com/IvanChernomyrdin/projectkeeper/internal/shared/logger"
)

// pgUniqueViolation — код ошибки PostgreSQL для нарушения уникального индекса.
const pgUniqueViolation = "23505"

func sugar(l *logger.HTTPLogger) *zap.SugaredLogger {
	if l == nil || l.Logger == nil {
		return zap.NewNop().Sugar()
	}
	return l.Sugar()
}
