package config

import (
	"context"
	"testing"

	"github.com/matryer/is"
)

func TestFromContextMissing(t *testing.T) {
	is := is.New(t)
	is.True(FromContext(context.TODO()) == nil)
}

func TestFromContext(t *testing.T) {
	is := is.New(t)
	cfg := DefaultConfig()
	ctx := WithContext(context.TODO(), cfg)
	is.Equal(FromContext(ctx), cfg)

	other := &Config{API: APIConfig{URL: "https://other.example.com"}}
	ctx = WithContext(ctx, other)
	is.Equal(FromContext(ctx).API.URL, "https://other.example.com")
}
