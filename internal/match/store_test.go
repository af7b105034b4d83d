package match

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeEncoder deterministically maps text to a small vector by counting
// character classes, standing in for the remote embedding model.
type fakeEncoder struct {
	calls int
}

func (f *fakeEncoder) Encode(_ context.Context, text string) ([]float32, error) {
	f.calls++
	var letters, digits, spaces float32
	for _, r := range text {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == ' ':
			spaces++
		default:
			letters++
		}
	}
	return []float32{letters, digits, spaces, 1}, nil
}

func TestSimilarityUnknownSession(t *testing.T) {
	enc := &fakeEncoder{}
	store := NewStore(enc)

	sim, err := store.Similarity(context.Background(), "x", "anything")
	require.NoError(t, err)
	assert.Equal(t, 0.0, sim)
	//no embedding call should be spent on an unknown session
	assert.Equal(t, 0, enc.calls)
}

func TestSimilarityDeterministic(t *testing.T) {
	store := NewStore(&fakeEncoder{})
	ctx := context.Background()

	require.NoError(t, store.Embed(ctx, "session", "golang backend developer resume"))

	first, err := store.Similarity(ctx, "session", "golang backend role at acme")
	require.NoError(t, err)
	second, err := store.Similarity(ctx, "session", "golang backend role at acme")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.GreaterOrEqual(t, first, -1.0)
	assert.LessOrEqual(t, first, 1.0)
}

func TestEmbedOverwrites(t *testing.T) {
	store := NewStore(&fakeEncoder{})
	ctx := context.Background()

	require.NoError(t, store.Embed(ctx, "s", "aaa"))
	before, err := store.Similarity(ctx, "s", "aaa")
	require.NoError(t, err)

	require.NoError(t, store.Embed(ctx, "s", "12345 67890"))
	after, err := store.Similarity(ctx, "s", "aaa")
	require.NoError(t, err)

	assert.NotEqual(t, before, after)
}

func TestCosine(t *testing.T) {
	tests := []struct {
		name string
		a, b []float32
		want float64
	}{
		{"identical", []float32{1, 2, 3}, []float32{1, 2, 3}, 1.0},
		{"orthogonal", []float32{1, 0}, []float32{0, 1}, 0.0},
		{"opposite", []float32{1, 0}, []float32{-1, 0}, -1.0},
		{"length mismatch", []float32{1, 2}, []float32{1, 2, 3}, 0.0},
		{"zero norm", []float32{0, 0}, []float32{1, 2}, 0.0},
		{"empty", nil, nil, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Cosine(tt.a, tt.b), 1e-9)
		})
	}
}

func TestGroqEncoder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req embedRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "test-model", req.Model)

		json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{{"embedding": []float32{0.1, 0.2, 0.3}}},
		})
	}))
	defer srv.Close()

	enc := NewEncoderWithEndpoint("test-key", "test-model", srv.URL)
	vec, err := enc.Encode(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, []float32{0.1, 0.2, 0.3}, vec)
}

func TestGroqEncoderAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"message":"rate limited"}}`))
	}))
	defer srv.Close()

	enc := NewEncoderWithEndpoint("k", "m", srv.URL)
	_, err := enc.Encode(context.Background(), "hello")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}
