package models

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignupRequestValidate(t *testing.T) {
	valid := func() *SignupRequest {
		return &SignupRequest{
			Username: "alice_99",
			Email:    "Alice@Example.COM",
			Password: "long-enough",
			Name:     "Alice",
		}
	}

	req := valid()
	require.NoError(t, req.Validate())
	// E-posta normalize edilir.
	assert.Equal(t, "alice@example.com", req.Email)

	req = valid()
	req.Username = "ab"
	assert.Error(t, req.Validate())

	req = valid()
	req.Username = "has spaces"
	assert.Error(t, req.Validate())

	req = valid()
	req.Email = "not-an-email"
	assert.Error(t, req.Validate())

	req = valid()
	req.Password = "short"
	assert.Error(t, req.Validate())

	req = valid()
	req.Name = "  "
	assert.Error(t, req.Validate())
}

func TestCreateCommentRequestValidate(t *testing.T) {
	req := &CreateCommentRequest{PostID: "p1", Content: "  hello  "}
	require.NoError(t, req.Validate())
	// İçerik trim'lenir.
	assert.Equal(t, "hello", req.Content)

	req = &CreateCommentRequest{PostID: "", Content: "hello"}
	assert.Error(t, req.Validate())

	req = &CreateCommentRequest{PostID: "p1", Content: strings.Repeat("x", 2001)}
	assert.Error(t, req.Validate())
}

func TestSendMessageRequestValidate(t *testing.T) {
	req := &SendMessageRequest{ReceiverID: "u2", Content: "hey"}
	require.NoError(t, req.Validate())

	req = &SendMessageRequest{ReceiverID: "", Content: "hey"}
	assert.Error(t, req.Validate())

	req = &SendMessageRequest{ReceiverID: "u2", Content: "   "}
	assert.Error(t, req.Validate())

	req = &SendMessageRequest{ReceiverID: "u2", Content: strings.Repeat("x", 5001)}
	assert.Error(t, req.Validate())
}

func TestCreatePostRequestValidate(t *testing.T) {
	req := &CreatePostRequest{Type: PostTypeArticle, Content: "body"}
	require.NoError(t, req.Validate())

	req = &CreatePostRequest{Type: "STORY", Content: "body"}
	assert.Error(t, req.Validate())

	longTitle := strings.Repeat("t", 201)
	req = &CreatePostRequest{Type: PostTypeMicro, Title: &longTitle, Content: "body"}
	assert.Error(t, req.Validate())
}

func TestValidReactionType(t *testing.T) {
	assert.True(t, ValidReactionType(ReactionInsightful))
	assert.False(t, ValidReactionType("DISLIKE"))
}

func TestUserSummary(t *testing.T) {
	avatar := "https://cdn.example.com/a.png"
	user := &User{ID: "u1", Username: "alice", Name: "Alice", AvatarURL: &avatar, PasswordHash: "secret"}

	summary := user.Summary()
	assert.Equal(t, "u1", summary.ID)
	assert.Equal(t, "alice", summary.Username)
	require.NotNil(t, summary.AvatarURL)
	assert.Equal(t, avatar, *summary.AvatarURL)
}
