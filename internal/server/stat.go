package server

import (
	"github.com/dustin/go-humanize"

	"github.com/NotSooShariff/adversarial-vision/api"
	"github.com/NotSooShariff/adversarial-vision/pkg/model"
)

type humanizedTransformStats struct {
	model.TransformStats
	ImageDecodingHuman string `json:"image_decoding_human"`
	TransformHuman     string `json:"transform_human"`
	ImageEncodingHuman string `json:"image_encoding_human"`
	OutputSizeHuman    string `json:"output_size_human"`
}

type humanizedEmbedStats struct {
	model.EmbedStats
	EmbeddingHuman string `json:"embedding_human"`
	CapacityHuman  string `json:"capacity_human"`
}

type humanizedExtractStats struct {
	model.ExtractStats
	ExtractionHuman string `json:"extraction_human"`
}

func toHumanizedTransformStats(stats model.TransformStats, outputSize int) humanizedTransformStats {
	return humanizedTransformStats{
		TransformStats:     stats,
		ImageDecodingHuman: stats.ImageDecoding.String(),
		TransformHuman:     stats.Transform.String(),
		ImageEncodingHuman: stats.ImageEncoding.String(),
		OutputSizeHuman:    humanize.Bytes(uint64(outputSize)),
	}
}

func toHumanizedEmbedStats(stats model.EmbedStats) humanizedEmbedStats {
	return humanizedEmbedStats{
		EmbedStats:     stats,
		EmbeddingHuman: stats.Embedding.String(),
		CapacityHuman:  humanizeBits(stats.CapacityBits),
	}
}

func toHumanizedExtractStats(stats model.ExtractStats) humanizedExtractStats {
	return humanizedExtractStats{
		ExtractStats:    stats,
		ExtractionHuman: stats.Extraction.String(),
	}
}

func toAPITransformStats(stats model.TransformStats, outputSize int) *api.TransformStats {
	return &api.TransformStats{
		ImageDecoding: stats.ImageDecoding,
		Transform:     stats.Transform,
		ImageEncoding: stats.ImageEncoding,
		OutputSize:    humanize.Bytes(uint64(outputSize)),
	}
}

// humanizeBits reports a bit capacity in bytes, the unit people think of
// message lengths in.
func humanizeBits(bits int) string {
	return humanize.Bytes(uint64(bits / 8))
}
