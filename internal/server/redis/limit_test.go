package redis

import (
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"gotest.tools/v3/assert"
)

func setup(t *testing.T) (*miniredis.Miniredis, *Redis) {
	t.Helper()
	srv := miniredis.RunT(t)
	port, err := strconv.Atoi(srv.Port())
	assert.NilError(t, err)

	return srv, NewRedis(Options{Host: srv.Host(), Port: port})
}

func TestRateOK(t *testing.T) {
	t.Run("no redis", func(t *testing.T) {
		err := RateOK(nil, "key1", 1)
		assert.NilError(t, err)
	})

	t.Run("under limit", func(t *testing.T) {
		_, redis := setup(t)
		err := RateOK(redis, "key1", 1)
		assert.NilError(t, err)
	})

	t.Run("over limit", func(t *testing.T) {
		_, redis := setup(t)

		err := RateOK(redis, "key1", 1)
		assert.NilError(t, err)

		err = RateOK(redis, "key1", 1)
		assert.ErrorContains(t, err, "over limit")
	})

	t.Run("limit reset after 1 minute", func(t *testing.T) {
		srv, redis := setup(t)

		err := RateOK(redis, "key1", 1)
		assert.NilError(t, err)

		err = RateOK(redis, "key1", 1)
		assert.ErrorContains(t, err, "over limit")

		srv.FastForward(time.Minute)
		err = RateOK(redis, "key1", 1)
		assert.NilError(t, err)
	})

	t.Run("keys are counted separately", func(t *testing.T) {
		_, redis := setup(t)

		keys := []string{"key1", "key2", "key3"}
		for _, key := range keys {
			err := RateOK(redis, key, 1)
			assert.NilError(t, err)

			err = RateOK(redis, key, 1)
			assert.ErrorContains(t, err, "over limit")
		}
	})
}

func TestLoginLimit(t *testing.T) {
	t.Run("no failures", func(t *testing.T) {
		_, redis := setup(t)
		err := LoginOK(redis, "alice@example.com")
		assert.NilError(t, err)
	})

	t.Run("locked out after repeated failures", func(t *testing.T) {
		_, redis := setup(t)

		for i := 0; i < 5; i++ {
			LoginBad(redis, "alice@example.com", 5)
		}

		err := LoginOK(redis, "alice@example.com")
		assert.ErrorContains(t, err, "over limit")
	})

	t.Run("successful login clears the counter", func(t *testing.T) {
		_, redis := setup(t)

		for i := 0; i < 5; i++ {
			LoginBad(redis, "alice@example.com", 5)
		}
		LoginGood(redis, "alice@example.com")

		err := LoginOK(redis, "alice@example.com")
		assert.NilError(t, err)
	})

	t.Run("usernames are tracked separately", func(t *testing.T) {
		_, redis := setup(t)

		for i := 0; i < 5; i++ {
			LoginBad(redis, "alice@example.com", 5)
		}

		err := LoginOK(redis, "bob@example.com")
		assert.NilError(t, err)
	})
}
