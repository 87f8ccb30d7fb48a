package analytics

import (
	"os"

	"github.com/mimiclabs/mimic/model"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// StepCollector appends one JSON line per executed step to a log file,
// independent of the process logger.
type StepCollector struct {
	fileName string
	logger   *zap.Logger
}

func NewStepCollector(fileName string) (*StepCollector, error) {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.StacktraceKey = ""
	fileEncoder := zapcore.NewJSONEncoder(encoderConfig)
	logFile, err := os.OpenFile(fileName, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}
	writer := zapcore.AddSync(logFile)
	core := zapcore.NewTee(zapcore.NewCore(fileEncoder, writer, zapcore.InfoLevel))
	return &StepCollector{
		fileName: fileName,
		logger:   zap.New(core),
	}, nil
}

func (sc *StepCollector) RecordStepSuccess(workflowId string, runId string, step model.Step) {
	sc.logger.Info("success", zap.String("workflow", workflowId), zap.String("run", runId),
		zap.String("action", string(step.ActionType)), zap.Int("step", step.StepNumber), zap.String("target", step.Target))
}

func (sc *StepCollector) RecordStepFailure(workflowId string, runId string, step model.Step, reason string) {
	sc.logger.Info("failure", zap.String("workflow", workflowId), zap.String("run", runId),
		zap.String("action", string(step.ActionType)), zap.Int("step", step.StepNumber), zap.String("reason", reason))
}
