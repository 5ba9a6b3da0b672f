// Package tui runs the contact form as an interactive terminal session. Each
// field is prompted, blurred and re-prompted while its error is visible, then
// the message is submitted through the shared form state machine.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-contactform/pkg/clipboard"
	"github.com/goliatone/go-contactform/pkg/form"
	"github.com/goliatone/go-contactform/pkg/model"
)

const (
	menuSend        = "Send a message"
	menuCopy        = "Copy email address"
	menuQuit        = "Quit"
	sendingFallback = "Sending..."
)

// Session drives one terminal conversation. It also implements form.Sink so
// the form can report the sending state while the deliverer runs.
type Session struct {
	spec    model.FormModel
	contact model.ContactDetails
	driver  PromptDriver
	style   Style
	logger  *zap.Logger

	clipboardWriter clipboard.Writer
	copier          *clipboard.Copier

	ctx context.Context
}

var _ form.Sink = (*Session)(nil)

// NewSession prepares a session for spec.
func NewSession(spec model.FormModel, options ...Option) *Session {
	s := &Session{
		spec:   spec,
		style:  DefaultStyle(),
		logger: zap.NewNop(),
		ctx:    context.Background(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	if s.driver == nil {
		s.driver = NewSurveyDriver(nil)
	}

	copierOpts := []clipboard.Option{clipboard.WithLogger(s.logger)}
	if s.clipboardWriter != nil {
		copierOpts = append(copierOpts, clipboard.WithWriter(s.clipboardWriter))
	}
	s.copier = clipboard.New(clipboard.NotifierFunc(func(ctx context.Context, message string) error {
		return s.driver.Info(ctx, s.style.SuccessPrefix+message)
	}), copierOpts...)
	return s
}

// Render implements form.Sink.
func (s *Session) Render(state model.State) {
	if !state.Sending() {
		return
	}
	label := s.spec.SendingText
	if label == "" {
		label = sendingFallback
	}
	if err := s.driver.Info(s.ctx, s.style.InfoPrefix+label); err != nil {
		s.logger.Debug("sending notice not shown", zap.Error(err))
	}
}

// Run shows the menu until the user quits. Aborting a prompt returns
// ErrAborted.
func (s *Session) Run(ctx context.Context, f *form.Form) error {
	if f == nil {
		return errors.New("tui: form is required")
	}
	s.ctx = ctx
	defer func() { s.ctx = context.Background() }()

	if err := s.intro(ctx); err != nil {
		return err
	}

	for {
		options := []string{menuSend}
		if s.contact.Email != "" {
			options = append(options, menuCopy)
		}
		options = append(options, menuQuit)

		choice, err := s.driver.Select(ctx, SelectConfig{Message: "What would you like to do?", Options: options})
		if err != nil {
			return err
		}
		if choice < 0 || choice >= len(options) {
			continue
		}

		switch options[choice] {
		case menuSend:
			if err := s.send(ctx, f); err != nil {
				return err
			}
		case menuCopy:
			if err := s.copier.Copy(ctx, s.contact.Email); err != nil {
				if errors.Is(err, ErrAborted) || ctx.Err() != nil {
					return err
				}
				if infoErr := s.driver.Info(ctx, s.style.ErrorPrefix+"Failed to copy text"); infoErr != nil {
					return infoErr
				}
			}
		case menuQuit:
			return nil
		}
	}
}

func (s *Session) intro(ctx context.Context) error {
	var lines []string
	if s.spec.Summary != "" {
		lines = append(lines, s.spec.Summary)
	}
	if s.spec.Description != "" {
		lines = append(lines, s.spec.Description)
	}
	if s.contact.Email != "" {
		lines = append(lines, "Email: "+s.contact.Email)
	}
	if s.contact.Phone != "" {
		lines = append(lines, "Phone: "+s.contact.Phone)
	}
	if s.contact.Location != "" {
		lines = append(lines, "Location: "+s.contact.Location)
	}
	if len(lines) == 0 {
		return nil
	}
	return s.driver.Info(ctx, strings.Join(lines, "\n"))
}

func (s *Session) send(ctx context.Context, f *form.Form) error {
	for _, field := range model.Fields() {
		if err := s.promptField(ctx, f, field); err != nil {
			return err
		}
	}

	ok, err := s.driver.Confirm(ctx, ConfirmConfig{Message: "Send this message?", Default: true})
	if err != nil {
		return err
	}
	if !ok {
		return s.driver.Info(ctx, s.style.InfoPrefix+"Message not sent.")
	}

	for {
		status, err := f.Submit(ctx)

		var invalid *form.ValidationError
		switch {
		case err == nil:
			return s.driver.Info(ctx, s.style.SuccessPrefix+status.Message)
		case errors.As(err, &invalid):
			for _, field := range model.Fields() {
				if msg, ok := invalid.Errors.Get(field); ok {
					if infoErr := s.driver.Info(ctx, s.style.ErrorPrefix+msg); infoErr != nil {
						return infoErr
					}
				}
			}
			return nil
		case errors.Is(err, form.ErrSubmitInFlight):
			return s.driver.Info(ctx, s.style.InfoPrefix+"A message is already being sent.")
		case errors.Is(err, form.ErrDeliveryFailed):
			s.logger.Debug("delivery failed", zap.Error(err))
			if infoErr := s.driver.Info(ctx, s.style.ErrorPrefix+status.Message); infoErr != nil {
				return infoErr
			}
			retry, promptErr := s.driver.Confirm(ctx, ConfirmConfig{Message: "Try again?", Default: true})
			if promptErr != nil {
				return promptErr
			}
			if !retry {
				return nil
			}
		default:
			return err
		}
	}
}

// promptField asks for field until its value passes validation on blur.
func (s *Session) promptField(ctx context.Context, f *form.Form, field model.Field) error {
	spec, ok := s.spec.Spec(field)
	if !ok {
		spec = model.FieldSpec{Field: field, Label: field.String(), Widget: model.WidgetInput}
	}
	help := spec.Description
	if help == "" {
		help = spec.Placeholder
	}

	for {
		current := f.State().Values.Get(field)

		var (
			value string
			err   error
		)
		if spec.Widget == model.WidgetTextArea {
			value, err = s.driver.TextArea(ctx, TextAreaConfig{Message: spec.Label, Default: current, Help: help})
		} else {
			value, err = s.driver.Input(ctx, InputConfig{Message: spec.Label, Default: current, Help: help})
		}
		if err != nil {
			return err
		}

		if err := f.Change(field, value); err != nil {
			return err
		}
		if err := f.Blur(field); err != nil {
			return err
		}

		msg, invalid := f.State().FieldError(field)
		if !invalid {
			return nil
		}
		if err := s.driver.Info(ctx, fmt.Sprintf("%s%s", s.style.ErrorPrefix, msg)); err != nil {
			return err
		}
	}
}
