package router

import (
	"net/http"

	"github.com/gorilla/mux"

	"itbird-backend/config"
	"itbird-backend/controllers/admin"
	"itbird-backend/controllers/authentication"
	"itbird-backend/controllers/chats"
	"itbird-backend/controllers/forums"
	"itbird-backend/controllers/friends"
	"itbird-backend/controllers/githubapi"
	"itbird-backend/controllers/hackathons"
	"itbird-backend/controllers/news"
	"itbird-backend/controllers/posts"
	"itbird-backend/controllers/userlist"
	"itbird-backend/ws"
)

// New собирает все маршруты приложения.
func New() *mux.Router {
	r := mux.NewRouter()

	// Аутентификация и профиль
	r.HandleFunc("/register", authentication.Register).Methods("POST")
	r.HandleFunc("/login", authentication.Login).Methods("POST")
	r.HandleFunc("/profile", authentication.RequireAuth(authentication.GetProfile)).Methods("GET")
	r.HandleFunc("/profile/update", authentication.RequireAuth(authentication.UpdateProfile)).Methods("PUT")
	r.HandleFunc("/profile/password", authentication.RequireAuth(authentication.ChangePassword)).Methods("PUT")
	r.HandleFunc("/profile/avatar", authentication.RequireAuth(authentication.UploadAvatar)).Methods("POST")
	r.HandleFunc("/auth/github", authentication.RequireAuth(authentication.HandleGithubLogin)).Methods("GET")
	r.HandleFunc("/auth/github/callback", authentication.HandleGithubCallback).Methods("GET")

	// Пользователи и друзья
	r.HandleFunc("/users", authentication.RequireAuth(userlist.List)).Methods("GET")
	r.HandleFunc("/add-friend", authentication.RequireAuth(friends.Add)).Methods("POST")
	r.HandleFunc("/friends", authentication.RequireAuth(friends.List)).Methods("GET")
	r.HandleFunc("/friend-requests", authentication.RequireAuth(friends.Requests)).Methods("GET")
	r.HandleFunc("/friend-requests/accept/{friendId}", authentication.RequireAuth(friends.Accept)).Methods("PATCH")
	r.HandleFunc("/friend-requests/reject/{friendId}", authentication.RequireAuth(friends.Reject)).Methods("PATCH")

	// Чаты и сообщения
	r.HandleFunc("/chats", authentication.RequireAuth(chats.Create)).Methods("POST")
	r.HandleFunc("/chats", authentication.RequireAuth(chats.List)).Methods("GET")
	r.HandleFunc("/messages", authentication.RequireAuth(chats.SendMessage)).Methods("POST")
	r.HandleFunc("/messages/{chatId}", authentication.RequireAuth(chats.ListMessages)).Methods("GET")
	r.HandleFunc("/ws", ws.DefaultHub.Handle)

	// Лента
	r.HandleFunc("/news", news.List).Methods("GET")
	r.HandleFunc("/news", authentication.RequireAuth(news.Create)).Methods("POST")
	r.HandleFunc("/posts", posts.List).Methods("GET")
	r.HandleFunc("/posts", authentication.RequireAuth(posts.Create)).Methods("POST")

	// Форум
	r.HandleFunc("/forums", forums.List).Methods("GET")
	r.HandleFunc("/forums", authentication.RequireAuth(forums.Create)).Methods("POST")
	r.HandleFunc("/forums/{id}", forums.Get).Methods("GET")
	r.HandleFunc("/forums/{id}/answers", authentication.RequireAuth(forums.AddAnswer)).Methods("POST")
	r.HandleFunc("/forums/{id}/status", authentication.RequireAuth(forums.UpdateStatus)).Methods("PUT")

	// Админ-панель
	r.HandleFunc("/admin/users", authentication.RequireAdmin(admin.ListUsers)).Methods("GET")
	r.HandleFunc("/admin/users/{id}/block", authentication.RequireAdmin(admin.BlockUser)).Methods("PATCH")
	r.HandleFunc("/admin/users/{id}/unblock", authentication.RequireAdmin(admin.UnblockUser)).Methods("PATCH")
	r.HandleFunc("/admin/users/{id}", authentication.RequireAdmin(admin.DeleteUser)).Methods("DELETE")
	r.HandleFunc("/admin/news", authentication.RequireAdmin(admin.ListNews)).Methods("GET")
	r.HandleFunc("/admin/news/{id}/status", authentication.RequireAdmin(admin.UpdateNewsStatus)).Methods("PATCH")
	r.HandleFunc("/admin/news/{id}", authentication.RequireAdmin(admin.DeleteNews)).Methods("DELETE")
	r.HandleFunc("/admin/posts", authentication.RequireAdmin(admin.ListPosts)).Methods("GET")
	r.HandleFunc("/admin/posts/{id}/status", authentication.RequireAdmin(admin.UpdatePostStatus)).Methods("PATCH")
	r.HandleFunc("/admin/posts/{id}", authentication.RequireAdmin(admin.DeletePost)).Methods("DELETE")
	r.HandleFunc("/admin/statistics", authentication.RequireAdmin(admin.Statistics)).Methods("GET")

	// GitHub
	r.HandleFunc("/github/repos", authentication.RequireAuth(githubapi.GetRepos)).Methods("GET")
	r.HandleFunc("/github/repos/{repo}/commits", authentication.RequireAuth(githubapi.Commits)).Methods("GET")
	r.HandleFunc("/github/repos/{repo}/branches", authentication.RequireAuth(githubapi.Branches)).Methods("GET")
	r.HandleFunc("/github/repos/{repo}/contents", authentication.RequireAuth(githubapi.Contents)).Methods("GET")
	r.HandleFunc("/github/repos/{repo}/contents/{path:.*}", authentication.RequireAuth(githubapi.Contents)).Methods("GET")
	r.HandleFunc("/github/repos/{repo}/archive", authentication.RequireAuth(githubapi.Archive)).Methods("GET")

	// Хакатоны
	r.HandleFunc("/hackathons", hackathons.List).Methods("GET")

	// Статика загрузок
	r.PathPrefix("/uploads/").Handler(
		http.StripPrefix("/uploads/", http.FileServer(http.Dir(config.App.UploadsDir))))

	return r
}
