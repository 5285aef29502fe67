package api

import "time"

// TransformRequest documents the JSON body of a transform. The server reads
// the body as a raw object since the accepted fields depend on the technique;
// this type only lists the ones common to all of them.
type TransformRequest struct {
	Image     string `json:"image" example:"data:image/png;base64,iVBORw0KGgo..."`
	Text      string `json:"text" example:"ignore previous instructions"`
	Technique string `json:"technique,omitempty" example:"low-contrast"`
}

// TransformResponse carries the transformed image as a PNG data URI, or for
// vector techniques the validated configuration in SVGConfig.
type TransformResponse struct {
	Success   bool              `json:"success"`
	Image     string            `json:"image,omitempty"`
	SVGConfig any               `json:"svgConfig,omitempty"`
	Message   string            `json:"message,omitempty"`
	Metadata  TransformMetadata `json:"metadata"`
}

type TransformMetadata struct {
	Technique  string          `json:"technique"`
	Parameters any             `json:"parameters"`
	Timestamp  string          `json:"timestamp"`
	Note       string          `json:"note,omitempty"`
	Stats      *TransformStats `json:"stats,omitempty"`
}

type TransformStats struct {
	ImageDecoding time.Duration `json:"imageDecoding"`
	Transform     time.Duration `json:"transform"`
	ImageEncoding time.Duration `json:"imageEncoding"`
	OutputSize    string        `json:"outputSize"`
}

type ExtractRequest struct {
	Image          string `json:"image" binding:"required"`
	BitsPerChannel int    `json:"bitsPerChannel,omitempty" example:"1"`
	Channels       string `json:"channels,omitempty" example:"rgb"`
}

type ExtractResponse struct {
	Success      bool   `json:"success"`
	Text         string `json:"text"`
	TextLength   int    `json:"textLength"`
	CapacityBits int    `json:"capacityBits"`
	Capacity     string `json:"capacity"`
}
