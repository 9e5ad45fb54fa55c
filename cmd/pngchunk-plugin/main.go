package main

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/google/cel-go/cel"
	"github.com/redpanda-data/benthos/v4/public/service"

	chunkcel "github.com/twinfer/pngchunk-plugin/internal/cel"
	"github.com/twinfer/pngchunk-plugin/pkg/pngchunk"
)

// ChunkProcessor is a Benthos processor that parses PNG-style chunk records
// into structured data and serializes structured data back to binary records.
type ChunkProcessor struct {
	config      ChunkConfig
	filter      cel.Program // nil when no filter is configured
	logger      *service.Logger
	mParsed     *service.MetricCounter
	mSerialized *service.MetricCounter
	mFiltered   *service.MetricCounter
	mErrors     *service.MetricCounter
}

// ChunkConfig contains configuration parameters for the chunk processor.
type ChunkConfig struct {
	Operator     string `json:"operator" yaml:"operator"`
	TextEncoding string `json:"text_encoding" yaml:"text_encoding"`
	Filter       string `json:"filter" yaml:"filter"`
}

func init() {
	// Register the processor with Benthos
	err := service.RegisterProcessor(
		"png_chunk",
		chunkProcessorConfig(),
		func(conf *service.ParsedConfig, mgr *service.Resources) (service.Processor, error) {
			return newChunkProcessorFromConfig(conf, mgr)
		},
	)
	if err != nil {
		panic(err)
	}
}

// chunkProcessorConfig returns a config spec for a png_chunk processor.
func chunkProcessorConfig() *service.ConfigSpec {
	return service.NewConfigSpec().
		Summary("Parses or serializes PNG-style chunk records (length, type, data, CRC-32).").
		Description("Each message holds exactly one chunk record. Parsing verifies the type tag and CRC-32 trailer and emits a structured view of the chunk; serializing builds the binary record back from a structured view. Walking a whole container file into per-chunk messages is left to upstream components.").
		Field(service.NewStringField("operator").
			Description("Whether to parse binary records into structured data (`parse`) or serialize structured data into binary records (`serialize`).").
			Default("parse")).
		Field(service.NewStringField("text_encoding").
			Description("Character encoding used to render chunk data as text when parsing. The format's own text chunks use ISO-8859-1 (tEXt, zTXt) or UTF-8 (iTXt).").
			Example("ISO-8859-1").
			Default("UTF-8")).
		Field(service.NewStringField("filter").
			Description("Optional CEL expression over the parsed chunk's attributes (`type`, `length`, `crc`, `critical`, `public`, `safe_to_copy`, `reserved_bit_valid`, `data`). Chunks it does not match are dropped. Only applies to the parse operator.").
			Example(`critical && type != "IDAT"`).
			Default("")).
		Version("0.1.0")
}

// newChunkProcessorFromConfig creates a new ChunkProcessor from a parsed config.
func newChunkProcessorFromConfig(conf *service.ParsedConfig, mgr *service.Resources) (*ChunkProcessor, error) {
	operator, err := conf.FieldString("operator")
	if err != nil {
		return nil, err
	}
	if operator != "parse" && operator != "serialize" {
		return nil, fmt.Errorf("unknown operator %q, must be parse or serialize", operator)
	}

	textEncoding, err := conf.FieldString("text_encoding")
	if err != nil {
		return nil, err
	}

	filterExpr, err := conf.FieldString("filter")
	if err != nil {
		return nil, err
	}

	var filter cel.Program
	if filterExpr != "" {
		env, err := chunkcel.NewEnvironment()
		if err != nil {
			return nil, err
		}
		filter, err = chunkcel.CompileFilter(env, filterExpr)
		if err != nil {
			return nil, err
		}
	}

	logger := mgr.Logger()
	metrics := mgr.Metrics()

	return &ChunkProcessor{
		config: ChunkConfig{
			Operator:     operator,
			TextEncoding: textEncoding,
			Filter:       filterExpr,
		},
		filter:      filter,
		logger:      logger,
		mParsed:     metrics.NewCounter("png_chunk_parsed_messages"),
		mSerialized: metrics.NewCounter("png_chunk_serialized_messages"),
		mFiltered:   metrics.NewCounter("png_chunk_filtered_messages"),
		mErrors:     metrics.NewCounter("png_chunk_processing_errors"),
	}, nil
}

// Close releases resources held by the processor. It holds none.
func (p *ChunkProcessor) Close(ctx context.Context) error {
	return nil
}

// Process applies chunk parsing or serialization to a message.
func (p *ChunkProcessor) Process(ctx context.Context, msg *service.Message) (service.MessageBatch, error) {
	if p.config.Operator == "parse" {
		return p.parseRecord(ctx, msg)
	}
	return p.serializeRecord(ctx, msg)
}

// parseRecord parses one binary chunk record into a structured view.
func (p *ChunkProcessor) parseRecord(ctx context.Context, msg *service.Message) (service.MessageBatch, error) {
	p.logger.Debug("Parsing chunk record")

	binData, err := msg.AsBytes()
	if err != nil {
		p.logger.Errorf("Failed to get binary data from message: %v", err)
		p.mErrors.Incr(1)
		msg.SetError(fmt.Errorf("failed to get binary data from message: %w", err))
		return service.MessageBatch{msg}, nil
	}

	chunk, err := pngchunk.FromBytes(binData)
	if err != nil {
		p.logger.Errorf("Failed to parse chunk record of %d bytes: %v", len(binData), err)
		p.mErrors.Incr(1)
		msg.SetError(fmt.Errorf("failed to parse chunk record of %d bytes: %w", len(binData), err))
		return service.MessageBatch{msg}, nil
	}

	if p.filter != nil {
		matched, err := chunkcel.EvalChunk(p.filter, chunk)
		if err != nil {
			p.logger.Errorf("Failed to evaluate chunk filter: %v", err)
			p.mErrors.Incr(1)
			msg.SetError(fmt.Errorf("failed to evaluate chunk filter: %w", err))
			return service.MessageBatch{msg}, nil
		}
		if !matched {
			p.logger.Debugf("Dropping %s chunk not matching filter", chunk.Type())
			p.mFiltered.Incr(1)
			return service.MessageBatch{}, nil
		}
	}

	typ := chunk.Type()
	result := map[string]any{
		"length":             int64(chunk.Length()),
		"type":               typ.String(),
		"critical":           typ.IsCritical(),
		"public":             typ.IsPublic(),
		"safe_to_copy":       typ.IsSafeToCopy(),
		"reserved_bit_valid": typ.IsReservedBitValid(),
		"crc":                int64(chunk.CRC()),
		"data_base64":        base64.StdEncoding.EncodeToString(chunk.Data()),
	}
	if text, err := pngchunk.DecodeText(chunk.Data(), p.config.TextEncoding); err == nil {
		result["data_text"] = text
	}
	if info, ok := pngchunk.LookupType(typ.String()); ok {
		result["description"] = info.Description
	}

	p.logger.Debugf("Successfully parsed %s chunk with %d data bytes", typ, chunk.Length())
	p.mParsed.Incr(1)

	newMsg := service.NewMessage(nil)
	newMsg.SetStructured(result)

	// Copy metadata from original message
	msg.MetaWalk(func(key, value string) error {
		newMsg.MetaSet(key, value)
		return nil
	})

	return service.MessageBatch{newMsg}, nil
}

// serializeRecord builds one binary chunk record from a structured view.
func (p *ChunkProcessor) serializeRecord(ctx context.Context, msg *service.Message) (service.MessageBatch, error) {
	p.logger.Debug("Serializing structured data to chunk record")

	structData, err := msg.AsStructured()
	if err != nil {
		p.logger.Errorf("Failed to get structured data from message: %v", err)
		p.mErrors.Incr(1)
		msg.SetError(fmt.Errorf("failed to get structured data from message: %w", err))
		return service.MessageBatch{msg}, nil
	}

	chunk, err := chunkFromStructured(structData)
	if err != nil {
		p.logger.Errorf("Failed to serialize chunk: %v", err)
		p.mErrors.Incr(1)
		msg.SetError(fmt.Errorf("failed to serialize chunk: %w", err))
		return service.MessageBatch{msg}, nil
	}

	binData := chunk.Bytes()
	p.logger.Debugf("Successfully serialized %s chunk to %d bytes", chunk.Type(), len(binData))
	p.mSerialized.Incr(1)

	newMsg := service.NewMessage(binData)

	// Copy metadata from original message
	msg.MetaWalk(func(key, value string) error {
		newMsg.MetaSet(key, value)
		return nil
	})

	return service.MessageBatch{newMsg}, nil
}

// chunkFromStructured builds a chunk from the structured view emitted by the
// parse operator: a "type" tag plus data as either "data_base64" or
// "data_text" (raw UTF-8 bytes). Base64 wins when both are present.
func chunkFromStructured(structData any) (*pngchunk.Chunk, error) {
	fields, ok := structData.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("structured chunk must be an object, got %T", structData)
	}

	tag, ok := fields["type"].(string)
	if !ok {
		return nil, fmt.Errorf("missing or non-string type field")
	}
	typ, err := pngchunk.ParseChunkType(tag)
	if err != nil {
		return nil, err
	}

	var data []byte
	switch {
	case fields["data_base64"] != nil:
		encoded, ok := fields["data_base64"].(string)
		if !ok {
			return nil, fmt.Errorf("data_base64 must be a string, got %T", fields["data_base64"])
		}
		data, err = base64.StdEncoding.DecodeString(encoded)
		if err != nil {
			return nil, fmt.Errorf("decoding data_base64: %w", err)
		}
	case fields["data_text"] != nil:
		text, ok := fields["data_text"].(string)
		if !ok {
			return nil, fmt.Errorf("data_text must be a string, got %T", fields["data_text"])
		}
		data = []byte(text)
	}

	return pngchunk.New(typ, data), nil
}

func main() {
	service.RunCLI(context.Background())
}
