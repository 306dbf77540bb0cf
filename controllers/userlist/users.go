package userlist

import (
	"net/http"

	"itbird-backend/config"
	"itbird-backend/controllers/authentication"
	"itbird-backend/controllers/common"
	"itbird-backend/models/social"
	"itbird-backend/models/users"
)

// Статус дружбы глазами текущего пользователя.
const (
	FriendshipNone            = "none"
	FriendshipPendingSent     = "pending_sent"
	FriendshipPendingReceived = "pending_received"
	FriendshipAccepted        = "accepted"
)

type userWithFriendship struct {
	ID               uint    `json:"id"`
	Username         string  `json:"username"`
	Avatar           string  `json:"avatar"`
	Skills           string  `json:"skills"`
	GithubUsername   *string `json:"github_username"`
	FriendshipStatus string  `json:"friendshipStatus"`
}

// List: все пользователи кроме текущего, со статусом дружбы по отношению к нему.
func List(w http.ResponseWriter, r *http.Request, claims *authentication.Claims) {
	var all []users.User
	if err := config.DB.Where("id <> ?", claims.UserID).Order("username").Find(&all).Error; err != nil {
		common.Error(w, http.StatusInternalServerError, "Ошибка при получении пользователей")
		return
	}

	var friendships []social.Friendship
	if err := config.DB.Where("user_id = ? OR friend_id = ?", claims.UserID, claims.UserID).
		Find(&friendships).Error; err != nil {
		common.Error(w, http.StatusInternalServerError, "Ошибка при получении заявок")
		return
	}

	statusByUser := make(map[uint]string, len(friendships))
	for _, f := range friendships {
		other := f.FriendID
		status := FriendshipPendingSent
		if f.FriendID == claims.UserID {
			other = f.UserID
			status = FriendshipPendingReceived
		}
		if f.Status == social.FriendshipAccepted {
			status = FriendshipAccepted
		}
		statusByUser[other] = status
	}

	result := make([]userWithFriendship, 0, len(all))
	for _, u := range all {
		status, ok := statusByUser[u.ID]
		if !ok {
			status = FriendshipNone
		}
		result = append(result, userWithFriendship{
			ID:               u.ID,
			Username:         u.Username,
			Avatar:           u.Avatar,
			Skills:           u.Skills,
			GithubUsername:   u.GithubUsername,
			FriendshipStatus: status,
		})
	}

	common.JSON(w, http.StatusOK, result)
}
