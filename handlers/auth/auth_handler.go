package handlers // handlers/auth

import (
	"net/http"

	"formulario.link/configs/configslog"
	"formulario.link/pkg/flashmessages"
	"formulario.link/pkg/renderer"
	"formulario.link/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"go.uber.org/zap"
)

// AuthHandler cuida do login e logout do painel.
type AuthHandler struct {
	service services.IAuthService
}

// NewAuthHandler cria o handler com o serviço padrão.
func NewAuthHandler() *AuthHandler {
	return &AuthHandler{service: services.NewAuthService()}
}

func sessionFrom(c *fiber.Ctx) (*session.Session, error) {
	store, ok := c.Locals("session_store").(*session.Store)
	if !ok {
		return nil, fiber.ErrInternalServerError
	}
	return store.Get(c)
}

// ShowLogin exibe a tela de login.
func (h *AuthHandler) ShowLogin(c *fiber.Ctx) error {
	data := fiber.Map{"Title": "Entrar"}
	renderer.SetFlashMessages(data, flashmessages.GetFlashMessages(c))
	return renderer.Render(c, "auth/login", "layouts/auth_layout", data, http.StatusOK)
}

// Login valida as credenciais e abre a sessão.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	email := c.FormValue("email")
	password := c.FormValue("password")

	user, err := h.service.Authenticate(c.UserContext(), email, password)
	if err != nil {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, err.Error())
		return c.Redirect("/auth/login", fiber.StatusSeeOther)
	}

	sess, err := sessionFrom(c)
	if err != nil {
		configslog.Log.Error("Login: sessão indisponível", zap.Error(err))
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Erro interno. Tente novamente.")
		return c.Redirect("/auth/login", fiber.StatusSeeOther)
	}
	sess.Set("user_id", user.ID)
	sess.Set("user_name", user.Name)
	if err := sess.Save(); err != nil {
		configslog.Log.Error("Login: erro ao salvar sessão", zap.Error(err))
		return c.Redirect("/auth/login", fiber.StatusSeeOther)
	}

	return c.Redirect("/panel/forms", fiber.StatusFound)
}

// Logout encerra a sessão.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if sess, err := sessionFrom(c); err == nil {
		_ = sess.Destroy()
	}
	return c.Redirect("/auth/login", fiber.StatusFound)
}
