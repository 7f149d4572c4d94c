package utils

import (
	"fmt"
	"net/smtp"
	"os"
	"strings"
	"sync"
	"time"
)

type EmailConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

func GetEmailConfig() *EmailConfig {
	return &EmailConfig{
		Host:     os.Getenv("SMTP_HOST"),
		Port:     os.Getenv("SMTP_PORT"),
		Username: os.Getenv("SMTP_USERNAME"),
		Password: os.Getenv("SMTP_PASSWORD"),
		From:     os.Getenv("SMTP_FROM"),
	}
}

// Allowlist is the set of recipient addresses outbound email may target,
// matched case-insensitively.
type Allowlist map[string]bool

// BuildAllowlist collects addresses into an allow-list. Each argument may be
// a single address or a comma-separated list; empty entries are skipped.
func BuildAllowlist(addrs ...string) Allowlist {
	allow := Allowlist{}
	for _, entry := range addrs {
		for _, addr := range strings.Split(entry, ",") {
			addr = strings.ToLower(strings.TrimSpace(addr))
			if addr != "" {
				allow[addr] = true
			}
		}
	}
	return allow
}

func (a Allowlist) Allows(addr string) bool {
	return a[strings.ToLower(strings.TrimSpace(addr))]
}

// Mailer sends HTML email over SMTP, enforcing a minimum interval between
// sends so bursts of inquiries cannot trip provider rate limits. The clock
// and sleep functions are injectable for tests.
type Mailer struct {
	MinInterval time.Duration

	mu       sync.Mutex
	lastSend time.Time

	now      func() time.Time
	sleep    func(time.Duration)
	sendMail func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewMailer(minInterval time.Duration) *Mailer {
	return &Mailer{
		MinInterval: minInterval,
		now:         time.Now,
		sleep:       time.Sleep,
		sendMail:    smtp.SendMail,
	}
}

// Send delivers one HTML message. It blocks until the minimum inter-send
// interval has elapsed since the previous send.
func (m *Mailer) Send(to, subject, htmlBody string) error {
	config := GetEmailConfig()
	if config.Host == "" || config.Port == "" || config.From == "" {
		return fmt.Errorf("SMTP not configured")
	}

	m.throttle()

	headers := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=UTF-8\r\n\r\n",
		config.From, to, subject)
	msg := []byte(headers + htmlBody)

	var auth smtp.Auth
	if config.Username != "" && config.Password != "" {
		auth = smtp.PlainAuth("", config.Username, config.Password, config.Host)
	}

	addr := config.Host + ":" + config.Port
	return m.sendMail(addr, auth, config.From, []string{to}, msg)
}

func (m *Mailer) throttle() {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	if !m.lastSend.IsZero() {
		if wait := m.MinInterval - now.Sub(m.lastSend); wait > 0 {
			m.sleep(wait)
			now = now.Add(wait)
		}
	}
	m.lastSend = now
}
