package log

import "go.uber.org/zap"

// ZapConfig configures the zap backed logger.
type ZapConfig struct {
	Level        string
	Mode         string // production | development | debug
	Encoding     string // console | json
	ColorEnabled bool
}

type zapLogger struct {
	sugar *zap.SugaredLogger
}

type ctxKey struct{}

// RequestIDKey is the context key carrying the request id attached to every log line.
var RequestIDKey = ctxKey{}
