package logging

import (
	"context"
	"maps"

	"github.com/goliatone/go-sitekit/pkg/interfaces"
)

const (
	rootModule      = "sitekit"
	pagesModule     = "sitekit.pages"
	blocksModule    = "sitekit.blocks"
	translateModule = "sitekit.translate"
	renderModule    = "sitekit.render"
	editorModule    = "sitekit.editor"
)

// ModuleLogger returns a module-scoped logger, defaulting to a no-op
// implementation when no provider is supplied. The returned logger attaches
// the module identifier as structured context so downstream entries can be
// filtered predictably.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// PagesLogger returns the logger namespace reserved for the page services.
func PagesLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, pagesModule)
}

// BlocksLogger returns the logger namespace reserved for the block registry.
func BlocksLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, blocksModule)
}

// TranslateLogger returns the logger namespace reserved for translation fan-out.
func TranslateLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, translateModule)
}

// RenderLogger returns the logger namespace reserved for the page renderer.
func RenderLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, renderModule)
}

// EditorLogger returns the logger namespace reserved for editor sessions.
func EditorLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, editorModule)
}

// WithFields attaches structured fields to a logger when the implementation
// supports the optional FieldsLogger extension. Callers can pass nil or an
// empty field map; the original logger is returned unchanged in that case.
func WithFields(logger interfaces.Logger, fields map[string]any) interfaces.Logger {
	if logger == nil {
		return NoOp()
	}
	if len(fields) == 0 {
		return logger
	}
	if fieldsLogger, ok := logger.(interfaces.FieldsLogger); ok {
		cloned := make(map[string]any, len(fields))
		maps.Copy(cloned, fields)
		return fieldsLogger.WithFields(cloned)
	}
	return logger
}

// NoOp returns a logger that drops every log entry. It satisfies the Logger
// contract so services can safely operate when logging is disabled.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}
