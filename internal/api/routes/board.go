package routes

import (
	"github.com/go-chi/chi/v5"

	"Agora/internal/api/handlers/board"
	"Agora/internal/api/middleware"
	"Agora/internal/api/viewtoken"
	"Agora/internal/core/boards"
	"Agora/internal/core/files"
)

// RegisterBoardRoutes registers the board endpoints on the router.
// Reads are open to anonymous viewers; writes require an authenticated one.
func RegisterBoardRoutes(
	r chi.Router,
	service boards.Service,
	filesService files.Service,
	tokens *viewtoken.Transport,
	auth *middleware.IdentityMiddleware,
) {
	listHandler := board.NewListHandler(service)
	detailHandler := board.NewDetailHandler(service, tokens)
	saveHandler := board.NewSaveHandler(service)
	deleteHandler := board.NewDeleteHandler(service)
	recommendHandler := board.NewRecommendHandler(service, tokens)
	adminHandler := board.NewAdminHandler(service)
	uploadHandler := board.NewUploadHandler(filesService)

	r.With(auth.OptionalAuth).Get("/board/list", listHandler.HandleList)
	r.With(auth.OptionalAuth).Get("/board/detail", detailHandler.HandleDetail)

	r.With(auth.RequireAuth).Get("/board/save", saveHandler.HandleSaveView)
	r.With(auth.RequireAuth).Post("/board/save", saveHandler.HandleSave)
	r.With(auth.RequireAuth).Post("/board/delete", deleteHandler.HandleDelete)
	r.With(auth.RequireAuth).Post("/board/recommend", recommendHandler.HandleRecommend)
	r.With(auth.RequireAuth).Post("/board/admin", adminHandler.HandleAdmin)
	r.With(auth.RequireAuth).Post("/board/image", uploadHandler.HandleUpload)
}
