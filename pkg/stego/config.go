package stego

import (
	"errors"
	"fmt"
)

const (
	DefaultBitsPerChannel = 1
	DefaultChannels       = "rgb"

	MinBitsPerChannel = 1
	MaxBitsPerChannel = 3

	redChannel   = 0
	greenChannel = 1
	blueChannel  = 2
)

var (
	ErrInvalidConfig = errors.New("invalid steganography configuration")

	channelSets = map[string][]int{
		"rgb": {redChannel, greenChannel, blueChannel},
		"r":   {redChannel},
		"g":   {greenChannel},
		"b":   {blueChannel},
		"rg":  {redChannel, greenChannel},
		"rb":  {redChannel, blueChannel},
		"gb":  {greenChannel, blueChannel},
	}
)

// Config selects how many low bits of which color channels carry the payload.
// Alpha is never used.
type Config struct {
	BitsPerChannel int    `json:"bitsPerChannel"`
	Channels       string `json:"channels"`
}

func DefaultConfig() Config {
	return Config{BitsPerChannel: DefaultBitsPerChannel, Channels: DefaultChannels}
}

// PopulateUnsetConfigVars fills zero values with the defaults.
func (c *Config) PopulateUnsetConfigVars() {
	if c.BitsPerChannel == 0 {
		c.BitsPerChannel = DefaultBitsPerChannel
	}
	if c.Channels == "" {
		c.Channels = DefaultChannels
	}
}

func (c Config) Validate() error {
	if c.BitsPerChannel < MinBitsPerChannel || c.BitsPerChannel > MaxBitsPerChannel {
		return fmt.Errorf("%w: bitsPerChannel must be between %d and %d, got %d",
			ErrInvalidConfig, MinBitsPerChannel, MaxBitsPerChannel, c.BitsPerChannel)
	}
	if _, found := channelSets[c.Channels]; !found {
		return fmt.Errorf("%w: unknown channel set %q", ErrInvalidConfig, c.Channels)
	}
	return nil
}

// ChannelOffsets returns the byte offsets within a pixel that carry payload,
// always in R, G, B order.
func (c Config) ChannelOffsets() []int {
	return channelSets[c.Channels]
}

// ChannelSets lists the accepted values for Config.Channels.
func ChannelSets() []string {
	return []string{"rgb", "r", "g", "b", "rg", "rb", "gb"}
}

// CapacityBits is the number of payload bits an image of pixelCount pixels can
// hold, terminator included.
func (c Config) CapacityBits(pixelCount int) int {
	return pixelCount * len(c.ChannelOffsets()) * c.BitsPerChannel
}

func (c Config) mask() byte {
	return byte(1<<c.BitsPerChannel) - 1
}
