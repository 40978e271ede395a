package options_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tarantool/go-datastore/internal/options"
)

type settings struct {
	meta    map[string]any
	retries int
}

func TestApplyOptions(t *testing.T) {
	t.Parallel()

	defaults := func() settings {
		return settings{meta: nil, retries: 1}
	}

	tests := []struct {
		name        string
		constructor options.OptionConstructor[settings]
		callbacks   []options.OptionCallback[settings]
		expected    settings
	}{
		{
			name:        "nil constructor and no callbacks",
			constructor: nil,
			callbacks:   nil,
			expected:    settings{meta: nil, retries: 0},
		},
		{
			name:        "defaults only",
			constructor: defaults,
			callbacks:   []options.OptionCallback[settings]{},
			expected:    settings{meta: nil, retries: 1},
		},
		{
			name:        "callbacks applied in order",
			constructor: defaults,
			callbacks: []options.OptionCallback[settings]{
				func(s *settings) { s.retries += 2 },
				func(s *settings) { s.retries *= 10 },
			},
			expected: settings{meta: nil, retries: 30},
		},
		{
			name:        "last callback wins",
			constructor: defaults,
			callbacks: []options.OptionCallback[settings]{
				func(s *settings) { s.meta = map[string]any{"a": 1} },
				func(s *settings) { s.meta = map[string]any{"b": 2} },
			},
			expected: settings{meta: map[string]any{"b": 2}, retries: 1},
		},
		{
			name:        "nil callbacks are skipped",
			constructor: defaults,
			callbacks: []options.OptionCallback[settings]{
				nil,
				func(s *settings) { s.retries = 5 },
				nil,
			},
			expected: settings{meta: nil, retries: 5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, options.ApplyOptions(tt.constructor, tt.callbacks))
		})
	}
}

func TestApplyOptions_Pointer(t *testing.T) {
	t.Parallel()

	constructor := func() *settings { return &settings{meta: nil, retries: 1} }
	callbacks := []options.OptionCallback[*settings]{
		func(s **settings) { (*s).retries = 2 },
		func(s **settings) { *s = &settings{meta: nil, retries: 3} },
	}

	assert.Equal(t, &settings{meta: nil, retries: 3}, options.ApplyOptions(constructor, callbacks))
}

func TestApply(t *testing.T) {
	t.Parallel()

	value := settings{meta: nil, retries: 1}

	options.Apply(&value)
	assert.Equal(t, settings{meta: nil, retries: 1}, value)

	options.Apply(&value,
		func(s *settings) { s.retries++ },
		nil,
		func(s *settings) { s.meta = map[string]any{"tenant": "a"} },
	)
	assert.Equal(t, settings{meta: map[string]any{"tenant": "a"}, retries: 2}, value)
}
