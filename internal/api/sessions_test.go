package api

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"

	"github.com/Artexxx/hr-onboarding/internal/onboarding"
)

func TestSessionStore_Sweep(t *testing.T) {
	rules := onboarding.NewValidator(onboarding.DefaultCatalog())
	st := newSessionStore(time.Hour)

	stale := st.create(rules, testNow.Add(-2*time.Hour))
	fresh := st.create(rules, testNow.Add(-time.Minute))

	// a session busy with a request is never swept
	busy := st.create(rules, testNow.Add(-3*time.Hour))
	busy.mu.Lock()

	assert.Equal(t, 1, st.sweep(testNow))
	busy.mu.Unlock()

	_, found := st.get(stale.wizard.ID())
	assert.False(t, found)
	_, found = st.get(fresh.wizard.ID())
	assert.True(t, found)
	_, found = st.get(busy.wizard.ID())
	assert.True(t, found)
}

func TestSessionStore_NoTTL(t *testing.T) {
	st := newSessionStore(0)
	st.create(onboarding.NewValidator(nil), testNow.Add(-1000*time.Hour))

	assert.Zero(t, st.sweep(testNow))
	assert.Equal(t, 1, st.count())
}

func TestSessionStore_RemoveAndReset(t *testing.T) {
	st := newSessionStore(time.Hour)
	sess := st.create(onboarding.NewValidator(nil), testNow)
	st.create(onboarding.NewValidator(nil), testNow)

	assert.True(t, st.remove(sess.wizard.ID()))
	assert.False(t, st.remove(sess.wizard.ID()))
	assert.Equal(t, 1, st.reset())
	assert.Zero(t, st.count())
}

func TestMiddleware(t *testing.T) {
	t.Run("request id is echoed", func(t *testing.T) {
		h := LoggingMiddleware(func(ctx *fasthttp.RequestCtx) { ok(ctx, "pong") })

		ctx := &fasthttp.RequestCtx{}
		ctx.Request.Header.Set("X-Request-ID", "req-1")
		h(ctx)

		assert.Equal(t, "req-1", string(ctx.Response.Header.Peek("X-Request-ID")))
		assert.Equal(t, "req-1", ctx.UserValue("request-id"))
	})

	t.Run("request id is generated", func(t *testing.T) {
		h := LoggingMiddleware(func(ctx *fasthttp.RequestCtx) {})

		ctx := &fasthttp.RequestCtx{}
		h(ctx)

		assert.NotEmpty(t, ctx.Response.Header.Peek("X-Request-ID"))
	})

	t.Run("panic becomes 500", func(t *testing.T) {
		h := RecoveryMiddleware(func(*fasthttp.RequestCtx) { panic("boom") })

		ctx := &fasthttp.RequestCtx{}
		require.NotPanics(t, func() { h(ctx) })
		assert.Equal(t, fasthttp.StatusInternalServerError, ctx.Response.StatusCode())
	})

	t.Run("preflight", func(t *testing.T) {
		called := false
		h := CORS(func(*fasthttp.RequestCtx) { called = true })

		ctx := &fasthttp.RequestCtx{}
		ctx.Request.Header.SetMethod(fasthttp.MethodOptions)
		h(ctx)

		assert.False(t, called)
		assert.Equal(t, fasthttp.StatusNoContent, ctx.Response.StatusCode())
	})
}
