package ml_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"soil-advisor/internal/ml"
)

func TestLabelCodec_RoundTrip(t *testing.T) {
	codec, err := ml.NewLabelCodec([]string{"Clayey", "Loamy", "Red", "Sandy"})
	require.NoError(t, err)

	for _, name := range codec.Options() {
		code, err := codec.Encode(name)
		require.NoError(t, err)
		decoded, err := codec.Decode(code)
		require.NoError(t, err)
		assert.Equal(t, name, decoded)
	}
}

func TestLabelCodec_EncodeUnknownCategory(t *testing.T) {
	codec, err := ml.NewLabelCodec([]string{"Sandy", "Loamy"})
	require.NoError(t, err)

	_, err = codec.Encode("Chalky")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ml.ErrUnknownCategory))
	assert.Contains(t, err.Error(), "Chalky")
}

func TestLabelCodec_DecodeOutOfRange(t *testing.T) {
	codec, err := ml.NewLabelCodec([]string{"Sandy", "Loamy"})
	require.NoError(t, err)

	_, err = codec.Decode(2)
	assert.Error(t, err)
	_, err = codec.Decode(-1)
	assert.Error(t, err)
}

func TestLabelCodec_OptionsOrderAndIsolation(t *testing.T) {
	classes := []string{"Kharif", "Rabi", "Summer"}
	codec, err := ml.NewLabelCodec(classes)
	require.NoError(t, err)

	options := codec.Options()
	assert.Equal(t, classes, options)

	// Mutating the returned slice must not affect the codec.
	options[0] = "mutated"
	code, err := codec.Encode("Kharif")
	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.Equal(t, classes, codec.Options())
}

func TestNewLabelCodec_RejectsBadClassLists(t *testing.T) {
	_, err := ml.NewLabelCodec(nil)
	assert.Error(t, err)

	_, err = ml.NewLabelCodec([]string{"Sandy", "Sandy"})
	assert.Error(t, err)

	_, err = ml.NewLabelCodec([]string{"Sandy", ""})
	assert.Error(t, err)
}
