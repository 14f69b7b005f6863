package mailer

import (
	"context"
	"encoding/json"
	"time"

	"github.com/sirupsen/logrus"

	mailtpl "github.com/squeegee-samurai/squeegee-api/pkg/mailer/templates"
)

// Sender delivers one rendered message. *Mailgun implements it.
type Sender interface {
	Send(ctx context.Context, to, subject, text, html string) error
}

// OnceClaimer guards against sending the same job twice. *helpers.RedisOnce implements it.
type OnceClaimer interface {
	Claim(ctx context.Context, key string) (bool, error)
	Release(ctx context.Context, key string) error
}

// Outcome tells the consumer what to do with the delivery.
type Outcome int

const (
	Ack Outcome = iota
	Requeue
	Drop
)

func (o Outcome) String() string {
	switch o {
	case Ack:
		return "ack"
	case Requeue:
		return "requeue"
	case Drop:
		return "drop"
	}
	return "unknown"
}

type Worker struct {
	Sender      Sender
	Once        OnceClaimer // optional
	Logger      *logrus.Logger
	SendTimeout time.Duration
}

func NewWorker(sender Sender, once OnceClaimer, logger *logrus.Logger) *Worker {
	return &Worker{Sender: sender, Once: once, Logger: logger, SendTimeout: 15 * time.Second}
}

func sentKey(id string) string { return "mail:sent:" + id }

// Handle decodes, renders and sends a single queued EmailJob.
// Malformed or unrenderable jobs are dropped; send failures are requeued.
func (w *Worker) Handle(ctx context.Context, body []byte) Outcome {
	var job EmailJob
	if err := json.Unmarshal(body, &job); err != nil {
		w.Logger.WithError(err).Warn("bad email job")
		return Drop
	}
	log := w.Logger.WithFields(logrus.Fields{"job_id": job.ID, "template": job.Template})
	if job.To == "" {
		log.Warn("email job without recipient")
		return Drop
	}

	subject, text, html := job.Subject, job.Text, job.HTML
	if job.Template != "" {
		s, t, h, err := mailtpl.Render(job.Template, job.Data)
		if err != nil {
			log.WithError(err).Error("render failed")
			return Drop
		}
		subject, text, html = s, t, h
	}
	if subject == "" || (text == "" && html == "") {
		log.Warn("email job has no content")
		return Drop
	}

	key := ""
	if job.ID != "" && w.Once != nil {
		claimed, err := w.Once.Claim(ctx, sentKey(job.ID))
		switch {
		case err != nil:
			// dedupe store down: prefer a possible duplicate over a lost email
			log.WithError(err).Warn("dedupe claim failed")
		case !claimed:
			log.Info("duplicate email job skipped")
			return Ack
		default:
			key = sentKey(job.ID)
		}
	}

	timeout := w.SendTimeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	c, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := w.Sender.Send(c, job.To, subject, text, html); err != nil {
		log.WithError(err).Warn("send failed")
		if key != "" {
			if rErr := w.Once.Release(ctx, key); rErr != nil {
				log.WithError(rErr).Warn("dedupe release failed")
			}
		}
		return Requeue
	}
	log.Info("email sent")
	return Ack
}
