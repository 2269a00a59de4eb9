package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"lendly/internal/service"
)

type ChatHandler struct {
	chats service.ChatService
}

func NewChatHandler(chats service.ChatService) *ChatHandler {
	return &ChatHandler{chats: chats}
}

func (h *ChatHandler) Get(w http.ResponseWriter, r *http.Request) {
	chat, err := h.chats.GetChat(r.Context(), userID(r), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, chat)
}

func (h *ChatHandler) ListForUser(w http.ResponseWriter, r *http.Request) {
	previews, err := h.chats.ListChats(r.Context(), userID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, previews)
}

func (h *ChatHandler) ListMessages(w http.ResponseWriter, r *http.Request) {
	messages, err := h.chats.ListMessages(r.Context(), userID(r), mux.Vars(r)["chatID"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, messages)
}

type sendMessageBody struct {
	ChatID string `json:"chatID"`
	Text   string `json:"text"`
}

func (h *ChatHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	var body sendMessageBody
	if !decodeBody(w, r, &body) {
		return
	}

	msg, err := h.chats.SendMessage(r.Context(), userID(r), body.ChatID, body.Text)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, msg)
}

type markReadBody struct {
	ChatID string `json:"chatID"`
}

func (h *ChatHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	var body markReadBody
	if !decodeBody(w, r, &body) {
		return
	}

	updated, err := h.chats.MarkMessagesRead(r.Context(), userID(r), body.ChatID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"updated": updated})
}
