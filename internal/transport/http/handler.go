package http

import (
	"github.com/SajeelSafdar99/mockupgenerator-be/internal/usecase"
	"github.com/SajeelSafdar99/mockupgenerator-be/pkg/logger"
)

// Handler groups the route handlers over the usecase layer.
type Handler struct {
	signup  usecase.SignupHandler
	login   usecase.LoginHandler
	refresh usecase.RefreshHandler
	logout  usecase.LogoutHandler
	profile usecase.ProfileHandler

	designs *usecase.DesignService
	images  *usecase.ImageService
	files   *usecase.FileService

	rp        *responder
	maxUpload int64
	log       *logger.Logger
}
