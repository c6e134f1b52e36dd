package cli

import (
	"bytes"
	"context"
	"os"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/netcanvas/internal/server"
	"github.com/matzehuels/netcanvas/pkg/viz"
)

func TestReload(t *testing.T) {
	ctx := context.Background()
	path := writeDataset(t)
	c := New(&bytes.Buffer{}, log.InfoLevel)

	ds, err := loadDataset(ctx, path, c.settings().Styles)
	if err != nil {
		t.Fatalf("loadDataset: %v", err)
	}
	srv := server.New(ds.net, server.Config{
		Width:      100,
		Height:     100,
		Options:    viz.DefaultOptions(),
		SessionTTL: time.Minute,
	})

	grown := `{"nodes": [[0, 0], [10, 10], [5, 0], [7, 7]], "links": [[0, 3, 1]]}`
	if err := os.WriteFile(path, []byte(grown), 0o644); err != nil {
		t.Fatal(err)
	}
	c.reload(ctx, srv, path)
	if got := srv.Network().NodeCount(); got != 4 {
		t.Fatalf("nodes after reload = %d, want 4", got)
	}

	if err := os.WriteFile(path, []byte("{broken"), 0o644); err != nil {
		t.Fatal(err)
	}
	c.reload(ctx, srv, path)
	if got := srv.Network().NodeCount(); got != 4 {
		t.Errorf("nodes after failed reload = %d, want previous 4", got)
	}
}

func TestDisplayAddr(t *testing.T) {
	tests := []struct {
		addr, want string
	}{
		{":8080", "localhost:8080"},
		{"127.0.0.1:9000", "127.0.0.1:9000"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := displayAddr(tt.addr); got != tt.want {
			t.Errorf("displayAddr(%q) = %q, want %q", tt.addr, got, tt.want)
		}
	}
}

func TestServeFlags(t *testing.T) {
	c := New(&bytes.Buffer{}, log.InfoLevel)
	cmd := c.serveCommand()
	for _, name := range []string{"addr", "session-ttl", "watch", "metrics", "width", "zoom"} {
		if cmd.Flags().Lookup(name) == nil {
			t.Errorf("serve is missing --%s", name)
		}
	}
}
