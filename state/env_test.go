package state

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"xmnote/common"
	"xmnote/config"
)

func TestContextWithEnv(t *testing.T) {
	env := EnvFromContext(ContextWithEnv(context.Background()))
	if env == nil {
		t.Fatal("EnvFromContext() returned nil")
	}
	if env.start.IsZero() {
		t.Error("Environment start time not set")
	}
}

func TestEnvFromContext_Panic(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected panic when env not in context")
		}
	}()
	EnvFromContext(context.Background())
}

func TestLocalEnv_Uptime(t *testing.T) {
	env := EnvFromContext(ContextWithEnv(context.Background()))

	time.Sleep(10 * time.Millisecond)
	uptime := env.Uptime()
	if uptime < 10*time.Millisecond {
		t.Errorf("Uptime() = %v, expected at least 10ms", uptime)
	}
	if uptime > time.Second {
		t.Errorf("Uptime() = %v, unexpectedly large", uptime)
	}
}

func TestLocalEnv_Codec(t *testing.T) {
	const src = "<ul><li><blockquote>x</blockquote></li></ul>"

	t.Run("configured order", func(t *testing.T) {
		env := &LocalEnv{
			Cfg: &config.Config{Codec: config.CodecConfig{ComboOrder: common.ComboOrderQuoteThenBullet}},
			Log: zaptest.NewLogger(t),
		}
		codec := env.Codec()
		if codec.Order == nil || *codec.Order != common.ComboOrderQuoteThenBullet {
			t.Fatalf("unexpected order %v", codec.Order)
		}
		if got, want := codec.DocumentToHTML(codec.HTMLToDocument(src)), "<blockquote><ul><li>x</li></ul></blockquote>"; got != want {
			t.Errorf("got %q, want %q", got, want)
		}
		// later configuration changes do not leak into returned codec
		env.Cfg.Codec.ComboOrder = common.ComboOrderBulletThenQuote
		if *codec.Order != common.ComboOrderQuoteThenBullet {
			t.Error("codec order changed with configuration")
		}
	})

	t.Run("empty environment", func(t *testing.T) {
		codec := (&LocalEnv{}).Codec()
		if codec.Order != nil || codec.Log != nil {
			t.Errorf("expected zero codec, got %+v", codec)
		}
	})
}

func TestLocalEnv_RedirectStdLog(t *testing.T) {
	t.Run("with logger", func(t *testing.T) {
		env := &LocalEnv{
			Log: zaptest.NewLogger(t, zaptest.WrapOptions(zap.AddCaller(), zap.AddCallerSkip(1))),
		}
		for i := range 3 {
			env.RedirectStdLog()
			if env.restoreStdLog == nil {
				t.Errorf("Iteration %d: restoreStdLog not set", i)
			}
			env.RestoreStdLog()
		}
	})

	t.Run("without logger", func(t *testing.T) {
		env := &LocalEnv{}
		env.RedirectStdLog()
		if env.restoreStdLog != nil {
			t.Error("Expected restoreStdLog to remain nil")
		}
		// Should not panic
		env.RestoreStdLog()
	})
}
