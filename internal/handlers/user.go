package handlers

import (
	"net/http"

	"github.com/filmorate/filmorate/internal/logging"
	"github.com/filmorate/filmorate/internal/models"
	"github.com/filmorate/filmorate/internal/services"
)

type UserHandler struct {
	users *services.UserService
}

func NewUserHandler(users *services.UserService) *UserHandler {
	return &UserHandler{users: users}
}

func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var user models.User
	if !decodeBody(w, r, &user) {
		return
	}

	created, err := h.users.Create(r.Context(), &user)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	logging.Info("user created", map[string]interface{}{"id": created.ID, "login": created.Login})
	writeJSON(w, http.StatusCreated, created)
}

func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	var user models.User
	if !decodeBody(w, r, &user) {
		return
	}

	updated, err := h.users.Update(r.Context(), &user)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	logging.Info("user updated", map[string]interface{}{"id": updated.ID})
	writeJSON(w, http.StatusOK, updated)
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.GetAll(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt(w, r, "id")
	if !ok {
		return
	}

	user, err := h.users.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *UserHandler) AddFriend(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathInt(w, r, "id")
	if !ok {
		return
	}
	friendID, ok := pathInt(w, r, "friendId")
	if !ok {
		return
	}

	if err := h.users.AddFriend(r.Context(), userID, friendID); err != nil {
		writeServiceError(w, err)
		return
	}

	logging.Info("friend requested", map[string]interface{}{"user_id": userID, "friend_id": friendID})
	w.WriteHeader(http.StatusNoContent)
}

func (h *UserHandler) ConfirmFriend(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathInt(w, r, "id")
	if !ok {
		return
	}
	friendID, ok := pathInt(w, r, "friendId")
	if !ok {
		return
	}

	if err := h.users.ConfirmFriend(r.Context(), userID, friendID); err != nil {
		writeServiceError(w, err)
		return
	}

	logging.Info("friendship confirmed", map[string]interface{}{"user_id": userID, "friend_id": friendID})
	w.WriteHeader(http.StatusNoContent)
}

func (h *UserHandler) RemoveFriend(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathInt(w, r, "id")
	if !ok {
		return
	}
	friendID, ok := pathInt(w, r, "friendId")
	if !ok {
		return
	}

	if err := h.users.RemoveFriend(r.Context(), userID, friendID); err != nil {
		writeServiceError(w, err)
		return
	}

	logging.Info("friend removed", map[string]interface{}{"user_id": userID, "friend_id": friendID})
	w.WriteHeader(http.StatusNoContent)
}

func (h *UserHandler) Friends(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathInt(w, r, "id")
	if !ok {
		return
	}

	friends, err := h.users.Friends(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, friends)
}

func (h *UserHandler) CommonFriends(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathInt(w, r, "id")
	if !ok {
		return
	}
	otherID, ok := pathInt(w, r, "otherId")
	if !ok {
		return
	}

	common, err := h.users.CommonFriends(r.Context(), userID, otherID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, common)
}
