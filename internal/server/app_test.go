package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/dmitrijs2005/alumniauth/internal/server/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memoryConfig(t *testing.T) *config.Config {
	t.Helper()
	c := &config.Config{}
	c.LoadDefaults()
	c.Env = "prod"
	c.StorageDriver = config.StorageMemory
	c.AccessSecret = "access"
	c.RefreshSecret = "refresh"
	c.BcryptCost = 4
	c.ShutdownTimeout = time.Second
	return c
}

func freePort(t *testing.T) int {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := l.Addr().(*net.TCPAddr).Port
	require.NoError(t, l.Close())
	return port
}

func TestNewApp_InvalidConfig(t *testing.T) {
	c := memoryConfig(t)
	c.RefreshSecret = c.AccessSecret

	_, err := NewApp(context.Background(), c)
	assert.Error(t, err)
}

func TestNewApp_BadDSN(t *testing.T) {
	c := memoryConfig(t)
	c.StorageDriver = config.StoragePostgres
	c.DatabaseDSN = "::not a dsn::"

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := NewApp(ctx, c)
	assert.Error(t, err)
}

func TestApp_RunAndStop(t *testing.T) {
	c := memoryConfig(t)
	c.Port = freePort(t)

	app, err := NewApp(context.Background(), c)
	require.NoError(t, err)
	defer app.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		app.Run(ctx)
		close(done)
	}()

	url := fmt.Sprintf("http://127.0.0.1:%d/", c.Port)
	require.Eventually(t, func() bool {
		resp, err := http.Get(url)
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 50*time.Millisecond)

	cancel()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("app did not stop after cancel")
	}
}
