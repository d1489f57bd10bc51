// Package flashmessages guarda mensagens de feedback entre redirects usando a
// sessão do Fiber.
package flashmessages

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

// Chaves de flash reconhecidas pelos layouts.
const (
	FlashSuccessKey = "flash_success"
	FlashErrorKey   = "flash_error"
)

func store(c *fiber.Ctx) *session.Store {
	s, _ := c.Locals("session_store").(*session.Store)
	return s
}

// SetFlashMessage grava uma mensagem que será consumida na próxima renderização.
func SetFlashMessage(c *fiber.Ctx, key, message string) error {
	st := store(c)
	if st == nil {
		return nil
	}
	sess, err := st.Get(c)
	if err != nil {
		return err
	}
	sess.Set(key, message)
	return sess.Save()
}

// GetFlashMessages consome (e apaga) as mensagens pendentes.
func GetFlashMessages(c *fiber.Ctx) map[string]string {
	out := map[string]string{}
	st := store(c)
	if st == nil {
		return out
	}
	sess, err := st.Get(c)
	if err != nil {
		return out
	}
	for _, key := range []string{FlashSuccessKey, FlashErrorKey} {
		if msg, ok := sess.Get(key).(string); ok && msg != "" {
			out[key] = msg
			sess.Delete(key)
		}
	}
	_ = sess.Save()
	return out
}
