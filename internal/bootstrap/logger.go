package bootstrap

import "go.uber.org/zap"

func NewLogger(development bool) *zap.SugaredLogger {
	var (
		logger *zap.Logger
		err    error
	)
	if development {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	return logger.Sugar()
}
