package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"admissions-rag/internal/service"
	"admissions-rag/internal/service/mocks"

	"go.uber.org/mock/gomock"
)

func TestRepl(t *testing.T) {
	ctrl := gomock.NewController(t)
	answers := mocks.NewMockAnswerService(ctrl)

	gomock.InOrder(
		answers.EXPECT().
			Ask(gomock.Any(), service.AskRequest{Question: "Học phí ngành Dược?"}).
			Return(service.AskResponse{Rendered: "Học phí là 30 triệu đồng."}, nil),
		answers.EXPECT().
			Ask(gomock.Any(), service.AskRequest{Question: "Mã ngành?"}).
			Return(service.AskResponse{}, errors.New("generation failed")),
	)

	in := strings.NewReader("Học phí ngành Dược?\n\n   \nMã ngành?\nQUIT\nkhông được hỏi\n")
	var out bytes.Buffer

	if err := repl(context.Background(), answers, in, &out); err != nil {
		t.Fatalf("repl() error = %v", err)
	}

	got := out.String()
	if !strings.Contains(got, "Học phí là 30 triệu đồng.") {
		t.Errorf("output missing rendered answer: %q", got)
	}
	if !strings.Contains(got, "Lỗi: generation failed") {
		t.Errorf("output missing error line: %q", got)
	}
}

func TestRepl_EOF(t *testing.T) {
	ctrl := gomock.NewController(t)
	answers := mocks.NewMockAnswerService(ctrl)

	var out bytes.Buffer
	if err := repl(context.Background(), answers, strings.NewReader(""), &out); err != nil {
		t.Errorf("repl() at EOF error = %v, want nil", err)
	}
}
