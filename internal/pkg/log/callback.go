package log

import (
	"go.uber.org/zap/zapcore"
)

// callbackCore calls the callback for each enabled entry.
// It is used to redirect logs of a third-party library, which accepts only *zap.Logger.
type callbackCore struct {
	zapcore.LevelEnabler
	fields   []zapcore.Field
	callback func(entry zapcore.Entry, fields []zapcore.Field)
}

func NewCallbackCore(callback func(entry zapcore.Entry, fields []zapcore.Field)) zapcore.Core {
	return &callbackCore{LevelEnabler: DebugLevel, callback: callback}
}

func (c *callbackCore) With(fields []zapcore.Field) zapcore.Core {
	clone := *c
	clone.fields = append(append([]zapcore.Field(nil), c.fields...), fields...)
	return &clone
}

func (c *callbackCore) Check(entry zapcore.Entry, checked *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(entry.Level) {
		return checked.AddCore(entry, c)
	}
	return checked
}

func (c *callbackCore) Write(entry zapcore.Entry, fields []zapcore.Field) error {
	all := make([]zapcore.Field, 0, len(c.fields)+len(fields))
	all = append(all, c.fields...)
	all = append(all, fields...)
	c.callback(entry, all)
	return nil
}

func (c *callbackCore) Sync() error {
	return nil
}
