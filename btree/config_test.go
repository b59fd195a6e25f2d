package btree

import (
	"testing"

	"github.com/npillmayer/schuko/schukonf/testconfig"
	tassert "github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg, err := NewConfig()
	require.NoError(t, err)
	tassert.Equal(t, DefaultConfig(), cfg)
	tassert.Equal(t, DefaultConfig(), Config{}.normalized())
}

func TestConfigOptions(t *testing.T) {
	cfg, err := NewConfig(Degree(8))
	require.NoError(t, err)
	tassert.Equal(t, 8, cfg.MaxChildren)
	tassert.Equal(t, 4, cfg.MinChildren)

	cfg, err = NewConfig(Degree(9), MinFill(3), WithStorage(ExclusiveStorage))
	require.NoError(t, err)
	tassert.Equal(t, Config{MaxChildren: 9, MinChildren: 3, Storage: ExclusiveStorage}, cfg)

	cfg, err = NewConfig(MinFill(5))
	require.NoError(t, err)
	tassert.Equal(t, 10, cfg.MaxChildren)
}

func TestConfigRejectsInvalidShapes(t *testing.T) {
	for _, opts := range [][]Option{
		{Degree(5), MinFill(3)},
		{Degree(1)},
		{MinFill(-1), Degree(4)},
		{WithStorage(Storage(7))},
	} {
		_, err := NewConfig(opts...)
		tassert.ErrorIs(t, err, ErrInvalidConfig)
	}
}

func TestConstructorsRejectInvalidShapes(t *testing.T) {
	bad := Config{MaxChildren: 3, MinChildren: 2}
	tassert.ErrorIs(t, bad.Validate(), ErrInvalidConfig)
	tassert.NoError(t, Config{}.Validate())
	tassert.Panics(t, func() { NewMutCursor[item, Count, Count](bad) })
	tassert.Panics(t, func() { FromNode[item, Count, Count](bad, leafNode(1)) })
	tassert.Panics(t, func() { BuildSlice[item, Count, Count](bad, items(0, 20)) })
	tassert.Panics(t, func() { Concat(bad, leafNode(1), leafNode(2)) })
	tassert.Panics(t, func() { Join(Config{MinChildren: -1}, leafNode(1), leafNode(2)) })
	func() {
		defer func() {
			err, _ := recover().(error)
			tassert.ErrorIs(t, err, ErrInvalidConfig)
		}()
		NewMutCursor[item, Count, Count](bad)
	}()
}

func TestConfigFromConfiguration(t *testing.T) {
	conf := testconfig.Conf{
		KeyMaxChildren: "16",
		KeyMinChildren: "5",
		KeyStorage:     "exclusive",
	}
	cfg, err := ConfigFrom(conf)
	require.NoError(t, err)
	tassert.Equal(t, Config{MaxChildren: 16, MinChildren: 5, Storage: ExclusiveStorage}, cfg)

	cfg, err = ConfigFrom(testconfig.Conf{})
	require.NoError(t, err)
	tassert.Equal(t, DefaultConfig(), cfg)

	_, err = ConfigFrom(testconfig.Conf{KeyStorage: "mmap"})
	tassert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = ConfigFrom(testconfig.Conf{KeyMaxChildren: "3", KeyMinChildren: "2"})
	tassert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestStorageString(t *testing.T) {
	tassert.Equal(t, "shared", SharedStorage.String())
	tassert.Equal(t, "exclusive", ExclusiveStorage.String())
}
