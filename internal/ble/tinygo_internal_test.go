package ble

import (
	"errors"
	"testing"

	"github.com/robgonnella/zlink/internal/logger"
	"github.com/stretchr/testify/assert"
)

func newTestCentral() *TinyGoCentral {
	return &TinyGoCentral{
		events:   make(chan Event, eventBufferSize),
		links:    map[string]link{},
		canceled: map[string]bool{},
		dropping: map[string]int{},
		log:      logger.NewComponent("ble-central"),
	}
}

func TestChunks(t *testing.T) {
	t.Run("keeps small payloads whole", func(st *testing.T) {
		assert.Equal(st, [][]byte{[]byte("^XA^XZ")}, chunks([]byte("^XA^XZ"), 512))
	})

	t.Run("keeps empty payloads as one write", func(st *testing.T) {
		assert.Len(st, chunks([]byte{}, 512), 1)
	})

	t.Run("splits large payloads in order", func(st *testing.T) {
		data := []byte("abcdefg")

		assert.Equal(
			st,
			[][]byte{[]byte("abc"), []byte("def"), []byte("g")},
			chunks(data, 3),
		)
	})
}

func TestWriteChunks(t *testing.T) {
	t.Run("writes every chunk in order", func(st *testing.T) {
		written := [][]byte{}

		err := writeChunks([]byte("abcdefg"), 3, func(b []byte) (int, error) {
			written = append(written, b)
			return len(b), nil
		})

		assert.NoError(st, err)
		assert.Equal(st, [][]byte{[]byte("abc"), []byte("def"), []byte("g")}, written)
	})

	t.Run("stops at the first failed chunk", func(st *testing.T) {
		calls := 0
		radio := errors.New("radio failure")

		err := writeChunks([]byte("abcdefg"), 3, func(b []byte) (int, error) {
			calls++
			if calls == 2 {
				return 0, radio
			}
			return len(b), nil
		})

		assert.ErrorIs(st, err, radio)
		assert.Equal(st, 2, calls)
	})
}

func TestLinkDown(t *testing.T) {
	p := Peripheral{ID: "AA:BB:CC:DD:EE:FF", Name: "ZQ520", Attempt: 3}

	t.Run("reports the attempt that owned the link", func(st *testing.T) {
		c := newTestCentral()
		c.links[p.ID] = link{peripheral: p}

		c.linkDown(p.ID)

		evt := <-c.events

		assert.Equal(st, EventDisconnected, evt.Type)
		assert.Equal(st, p, evt.Peripheral)
		assert.Empty(st, c.links)
	})

	t.Run("ignores devices it never connected", func(st *testing.T) {
		c := newTestCentral()

		c.linkDown(p.ID)

		assert.Empty(st, c.events)
	})

	t.Run("swallows disconnects it caused", func(st *testing.T) {
		c := newTestCentral()
		c.dropping[p.ID] = 1

		next := p
		next.Attempt = 4
		c.links[p.ID] = link{peripheral: next}

		c.linkDown(p.ID)

		assert.Empty(st, c.events)
		assert.Empty(st, c.dropping)
		assert.Contains(st, c.links, p.ID)

		// a later loss belongs to the new attempt
		c.linkDown(p.ID)

		evt := <-c.events
		assert.Equal(st, uint64(4), evt.Peripheral.Attempt)
	})
}

func TestInfoFieldName(t *testing.T) {
	name, ok := InfoFieldName(SerialNumberUUID)

	assert.True(t, ok)
	assert.Equal(t, "serial", name)

	_, ok = InfoFieldName(WriteCharacteristicUUID)

	assert.False(t, ok)
}
