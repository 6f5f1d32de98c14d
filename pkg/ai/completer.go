package ai

import (
	"context"
	"errors"
	"os"

	openai "github.com/sashabaranov/go-openai"
)

// Erros específicos do provedor de IA
var (
	ErrMissingAPIKey = errors.New("chave de API do provedor de IA não configurada")
	ErrEmptyReply    = errors.New("resposta vazia do provedor de IA")
)

// Completer define a interface para o colaborador externo de text-completion.
// O engine nunca depende do SDK diretamente; qualquer falha ou resposta
// malformada é tratada pelo chamador como "sem correspondência", nunca como pânico.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// OpenAIClient implementa Completer sobre a API de chat da OpenAI
type OpenAIClient struct {
	client *openai.Client
	model  string
}

// NewOpenAIClientFromEnv cria um cliente a partir das variáveis de ambiente
// OPENAI_API_KEY e OPENAI_MODEL (padrão gpt-4o-mini).
func NewOpenAIClientFromEnv() (*OpenAIClient, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	model := os.Getenv("OPENAI_MODEL")
	if model == "" {
		model = openai.GPT4oMini
	}

	return &OpenAIClient{
		client: openai.NewClient(apiKey),
		model:  model,
	}, nil
}

// Complete envia o prompt e retorna o texto da primeira escolha
func (c *OpenAIClient) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: 0,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", err
	}

	if len(resp.Choices) == 0 {
		return "", ErrEmptyReply
	}

	return resp.Choices[0].Message.Content, nil
}
