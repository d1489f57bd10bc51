package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatchSendsFormEncodedPayload(t *testing.T) {
	var got url.Values
	var contentType string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		contentType = r.Header.Get("Content-Type")
		require.NoError(t, r.ParseForm())
		got = r.PostForm
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	svc := NewWebhookServiceWith(server.URL, server.Client())
	err := svc.Dispatch(context.Background(), CademiPayload{
		Token:        "segredo-abc",
		ProductID:    "77",
		ProductName:  "Curso X",
		ClientName:   "Maria Oliveira",
		ClientEmail:  "maria@example.com",
		SubmissionID: 42,
	})
	require.NoError(t, err)

	assert.Equal(t, "application/x-www-form-urlencoded", contentType)
	assert.Equal(t, "segredo-abc", got.Get("token"))
	assert.Equal(t, "aprovado", got.Get("status"))
	assert.Equal(t, "77", got.Get("produto_id"))
	assert.Equal(t, "Curso X", got.Get("produto_nome"))
	assert.Equal(t, "Maria Oliveira", got.Get("cliente_nome"))

	// O e-mail vai duplicado sob as duas chaves que o endpoint reconhece.
	assert.Equal(t, "maria@example.com", got.Get("cliente_email"))
	assert.Equal(t, "maria@example.com", got.Get("email"))

	// codigo = {submissionID}-{unixMilli}
	assert.Regexp(t, `^42-\d{13}$`, got.Get("codigo"))
}

func TestDispatchNon2xxReturnsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "token invalido", http.StatusUnauthorized)
	}))
	defer server.Close()

	svc := NewWebhookServiceWith(server.URL, server.Client())
	err := svc.Dispatch(context.Background(), CademiPayload{Token: "t", SubmissionID: 1})
	assert.Error(t, err)
}

func TestDispatchNetworkErrorReturnsError(t *testing.T) {
	svc := NewWebhookServiceWith("http://127.0.0.1:1", &http.Client{Timeout: 200 * time.Millisecond})
	err := svc.Dispatch(context.Background(), CademiPayload{Token: "t", SubmissionID: 1})
	assert.Error(t, err)
}

func TestTransactionCode(t *testing.T) {
	at := time.UnixMilli(1709994600000)
	assert.Equal(t, "42-1709994600000", TransactionCode(42, at))
}

func TestRedact(t *testing.T) {
	assert.Equal(t, "resposta com [REDIGIDO] dentro", Redact("resposta com segredo-abc dentro", "segredo-abc"))
	assert.Equal(t, "nada a esconder", Redact("nada a esconder", ""))
	assert.Equal(t, "[REDIGIDO][REDIGIDO]", Redact("toktok", "tok"))
}
