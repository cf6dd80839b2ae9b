package assistant

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("AdvisoryAssistant/pkg/assistant")

var ErrEmptyCompletion = errors.New("remote responder returned an empty completion")

// RemoteResponder is an external language model. Configured reports
// whether both credentials and an endpoint are present.
type RemoteResponder interface {
	Name() string
	Configured() bool
	Complete(ctx context.Context, utterance string, history []Message) (string, error)
}

type Responder interface {
	Respond(ctx context.Context, utterance string, history []Message) Resolution
}

// AIResponder prefers a configured remote model and falls back to the
// local engine whenever the remote is missing or fails.
type AIResponder struct {
	engine *Engine
	remote RemoteResponder
	log    *logrus.Logger
}

func NewResponder(engine *Engine, remote RemoteResponder, log *logrus.Logger) *AIResponder {
	return &AIResponder{
		engine: engine,
		remote: remote,
		log:    log,
	}
}

func (r *AIResponder) GenerateAIResponse(ctx context.Context, utterance string, history []Message) Reply {
	return r.Respond(ctx, utterance, history).Reply
}

func (r *AIResponder) Respond(ctx context.Context, utterance string, history []Message) Resolution {
	if r.remote == nil || !r.remote.Configured() {
		return r.engine.Resolve(utterance, history)
	}

	ctx, span := tracer.Start(ctx, "assistant.remote")
	defer span.End()
	span.SetAttributes(
		attribute.String("assistant.remote.provider", r.remote.Name()),
		attribute.Int("assistant.history.length", len(history)),
	)

	text, err := r.remote.Complete(ctx, utterance, history)
	if err == nil && strings.TrimSpace(text) == "" {
		err = ErrEmptyCompletion
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		r.log.WithFields(logrus.Fields{
			"provider": r.remote.Name(),
			"error":    err.Error(),
		}).Warn("Remote responder failed, using local responder")
		return r.engine.Resolve(utterance, history)
	}

	return Resolution{
		Reply:   Reply{Message: strings.TrimSpace(text)},
		Route:   RouteRemote,
		Context: r.engine.ExtractContext(history),
	}
}
