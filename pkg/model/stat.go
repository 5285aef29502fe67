package model

import (
	"time"
)

type EmbedStats struct {
	TextLength   int           `json:"textLength"`
	BitsEmbedded int           `json:"bitsEmbedded"`
	CapacityBits int           `json:"capacityBits"`
	Embedding    time.Duration `json:"embedding"`
}

type ExtractStats struct {
	BitsRead   int           `json:"bitsRead"`
	Extraction time.Duration `json:"extraction"`
}

type TransformStats struct {
	ImageDecoding time.Duration `json:"image_decoding"`
	Transform     time.Duration `json:"transform"`
	ImageEncoding time.Duration `json:"image_encoding"`
}
