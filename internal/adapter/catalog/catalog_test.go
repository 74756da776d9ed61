package catalog

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"motoride/internal/domain/entity"
	"motoride/internal/domain/service"
	"motoride/internal/infrastructure/ratelimit"
	"motoride/pkg/logger"
)

func ids(entries []entity.CatalogEntry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.ID)
	}
	return out
}

func TestParseCatalog(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    []string
		wantErr bool
	}{
		{name: "bare array", body: `[{"id":"a"},{"id":"b"}]`, want: []string{"a", "b"}},
		{name: "items envelope", body: `{"items":[{"id":"c"}]}`, want: []string{"c"}},
		{name: "results envelope", body: ` {"results":[{"id":"d"}],"total":1}`, want: []string{"d"}},
		{name: "empty array", body: `[]`, want: []string{}},
		{name: "object without list", body: `{"data":[{"id":"x"}]}`, wantErr: true},
		{name: "items not a list", body: `{"items":{"id":"x"}}`, wantErr: true},
		{name: "scalar", body: `"nope"`, wantErr: true},
		{name: "empty", body: ``, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCatalog([]byte(tt.body))
			if tt.wantErr {
				assert.ErrorIs(t, err, service.ErrCatalogFormat)
				return
			}
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, ids(got)); diff != "" {
				t.Errorf("ParseCatalog() ids mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDefaultStaticSource(t *testing.T) {
	entries, err := DefaultStaticSource().FetchCatalog(context.Background())
	require.NoError(t, err)

	want := []string{"MTR-001", "MTR-002", "MTR-003", "MTR-004", "MTR-005"}
	if diff := cmp.Diff(want, ids(entries)); diff != "" {
		t.Errorf("catalog ids mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "HONDA CL500", entries[1].Brandname)
	assert.Equal(t, "471cc Parallel-Twin", entries[1].Processor)
	assert.False(t, entries[0].CreatedAt.IsZero())
}

func TestStaticSourceReturnsCopy(t *testing.T) {
	src := NewStaticSource([]entity.CatalogEntry{{ID: "a"}})
	first, _ := src.FetchCatalog(context.Background())
	first[0].ID = "mutated"

	second, _ := src.FetchCatalog(context.Background())
	assert.Equal(t, "a", second[0].ID)
}

func TestHTTPSource(t *testing.T) {
	t.Run("decodes envelope", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"items":[{"id":"MTR-009","brandname":"BMW G310R"}]}`))
		}))
		defer srv.Close()

		entries, err := NewHTTPSource(srv.URL, srv.Client()).FetchCatalog(context.Background())
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "BMW G310R", entries[0].Title())
	})

	t.Run("429 is rate limited", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer srv.Close()

		_, err := NewHTTPSource(srv.URL, nil).FetchCatalog(context.Background())
		assert.ErrorIs(t, err, service.ErrRateLimited)
	})

	t.Run("server error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer srv.Close()

		_, err := NewHTTPSource(srv.URL, nil).FetchCatalog(context.Background())
		require.Error(t, err)
		assert.False(t, errors.Is(err, service.ErrRateLimited))
	})
}

type countingSource struct {
	calls int
}

func (s *countingSource) FetchCatalog(ctx context.Context) ([]entity.CatalogEntry, error) {
	s.calls++
	return []entity.CatalogEntry{{ID: "a"}}, nil
}

func TestRateLimitedSource(t *testing.T) {
	next := &countingSource{}
	src := NewRateLimitedSource(next, ratelimit.NewRateLimiter(0.001, 2))

	for i := 0; i < 2; i++ {
		_, err := src.FetchCatalog(context.Background())
		require.NoError(t, err)
	}

	core, logs := observer.New(zapcore.WarnLevel)
	logger.Set(zap.New(core))
	t.Cleanup(func() { logger.Init(os.Getenv("ENVIRONMENT")) })

	_, err := src.FetchCatalog(context.Background())
	assert.ErrorIs(t, err, service.ErrRateLimited)
	assert.Equal(t, 2, next.calls, "refused calls never reach the upstream")

	refused := logs.FilterMessage("catalog call refused").All()
	require.Len(t, refused, 1)
	assert.Equal(t, "catalog", refused[0].ContextMap()["upstream"])
}

func TestCatalogEntryToListing(t *testing.T) {
	entries, _ := DefaultStaticSource().FetchCatalog(context.Background())
	l := entries[0].ToListing()

	assert.Equal(t, "MTR-001", l.ID)
	assert.Equal(t, entity.SourceExternal, l.Source)
	assert.Equal(t, "HONDA PCX 150", l.DisplayName())
	assert.Equal(t, "150cc Single Cylinder, 12.31 HP, Scooter, 13.5 Nm, 5.5L", entity.Deref(l.Description))
	assert.NotNil(t, l.Front)
	assert.Nil(t, l.MonthlyPrice)
}
