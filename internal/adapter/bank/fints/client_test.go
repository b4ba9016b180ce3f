package fints

import (
	"errors"
	"testing"

	hbci "github.com/mitch000001/go-hbci/domain"
	"github.com/rs/zerolog"
)

func TestIsTanChallenge(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "pending challenge code",
			err:  errors.New("institute returned 3920: Zugelassene Zwei-Schritt-Verfahren"),
			want: true,
		},
		{
			name: "strong authentication required",
			err:  errors.New("dialog aborted (9075): Starke Kundenauthentifizierung notwendig"),
			want: true,
		},
		{
			name: "unrelated failure",
			err:  errors.New("connection reset by peer"),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isTanChallenge(tt.err); got != tt.want {
				t.Errorf("isTanChallenge() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAccountIBAN(t *testing.T) {
	client := &Client{logger: zerolog.Nop()}

	tests := []struct {
		name       string
		connection hbci.AccountConnection
		want       string
	}{
		{
			name:       "derives from bank code and number",
			connection: hbci.AccountConnection{BankID: "12030000", AccountID: "202051"},
			want:       "DE02120300000000202051",
		},
		{
			name:       "unparseable number yields empty IBAN",
			connection: hbci.AccountConnection{BankID: "12030000", AccountID: "not-a-number"},
			want:       "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := client.accountIBAN(tt.connection); got != tt.want {
				t.Errorf("accountIBAN() = %q, want %q", got, tt.want)
			}
		})
	}
}
