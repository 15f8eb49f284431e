package email

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"net/mail"
	"path/filepath"
	"sync"
)

type SendEmailInput struct {
	To      string
	Subject string
	Body    string
}

type Sender interface {
	Send(input SendEmailInput) error
}

// parsed templates by path, shared by every send of the process
var templates sync.Map

func loadTemplate(path string) (*template.Template, error) {
	if t, ok := templates.Load(path); ok {
		return t.(*template.Template), nil
	}

	t, err := template.ParseFiles(path)
	if err != nil {
		return nil, fmt.Errorf("parse file failed: %w", err)
	}
	actual, _ := templates.LoadOrStore(path, t)

	return actual.(*template.Template), nil
}

// GenerateBodyFromHTML renders templateFileName from templatesDir into Body.
func (e *SendEmailInput) GenerateBodyFromHTML(templatesDir string, templateFileName string, data any) error {
	t, err := loadTemplate(filepath.Join(templatesDir, templateFileName))
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return fmt.Errorf("email data injection failed: %w", err)
	}
	e.Body = buf.String()

	return nil
}

func (e *SendEmailInput) Validate() error {
	switch {
	case e.To == "":
		return errors.New("empty to")
	case e.Subject == "" || e.Body == "":
		return errors.New("empty subject/body")
	case !IsEmailValid(e.To):
		return fmt.Errorf("invalid to email %q", e.To)
	}
	return nil
}

// IsEmailValid accepts a bare address only, no display name.
func IsEmailValid(email string) bool {
	addr, err := mail.ParseAddress(email)
	if err != nil {
		return false
	}
	return addr.Address == email
}
