package console

import "go.uber.org/zap"

// ZapNotifier prints notifications through a sugared logger.
type ZapNotifier struct {
	log *zap.SugaredLogger
}

func NewZapNotifier(logger *zap.Logger) *ZapNotifier {
	return &ZapNotifier{log: logger.Sugar()}
}

func (n *ZapNotifier) Success(msg string) { n.log.Info(msg) }
func (n *ZapNotifier) Info(msg string)    { n.log.Info(msg) }
func (n *ZapNotifier) Error(msg string)   { n.log.Error(msg) }
