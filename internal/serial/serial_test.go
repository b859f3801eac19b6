package serial

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/thelolagemann/sm83/internal/interrupts"
	"github.com/thelolagemann/sm83/internal/scheduler"
	"github.com/thelolagemann/sm83/internal/types"
)

func TestController_Transfer(t *testing.T) {
	s := scheduler.NewScheduler()
	irq := interrupts.NewService()
	c := NewController(s, irq)

	var out bytes.Buffer
	c.Attach(NewWriterDevice(&out))

	c.Write(types.SB, 'P')
	c.Write(types.SC, 0x81)
	assert.True(t, c.Transferring())
	assert.Equal(t, uint8(0xFF), c.Read(types.SC))

	s.Tick(TransferTicks - 4)
	assert.Empty(t, out.String(), "byte must not be sent early")

	s.Tick(4)
	assert.Equal(t, "P", out.String())
	assert.False(t, c.Transferring())
	assert.Equal(t, uint8(0x7F), c.Read(types.SC))
	assert.Equal(t, uint8(0xFF), c.Read(types.SB), "nothing is plugged in on the other end")
	assert.Equal(t, uint8(interrupts.SerialFlag), irq.Flag)
}

func TestController_ExternalClock(t *testing.T) {
	s := scheduler.NewScheduler()
	irq := interrupts.NewService()
	c := NewController(s, irq)

	c.Write(types.SB, 0x42)
	c.Write(types.SC, 0x80)
	s.Tick(TransferTicks * 2)

	assert.True(t, c.Transferring(), "no external clock ever arrives")
	assert.Equal(t, uint8(0x42), c.Read(types.SB))
	assert.Zero(t, irq.Flag)
}
