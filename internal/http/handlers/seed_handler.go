package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/mediadb-backend/internal/http/handlers/common"
	"github.com/ignatzorin/mediadb-backend/internal/service"
)

// DemoSeeder создаёт демо-записи.
type DemoSeeder interface {
	SeedDemo(ctx context.Context) (*service.SeedResult, error)
}

// SeedHandler создаёт демо-пользователя и рабочее пространство (только development).
type SeedHandler struct {
	seeder DemoSeeder
}

// NewSeedHandler создаёт новый seed handler.
func NewSeedHandler(seeder DemoSeeder) *SeedHandler {
	return &SeedHandler{seeder: seeder}
}

// Seed обрабатывает POST /api/seed.
func (h *SeedHandler) Seed(c *gin.Context) {
	result, err := h.seeder.SeedDemo(c.Request.Context())
	if err != nil {
		common.AbortWithError(c, err)
		return
	}
	common.RespondData(c, http.StatusOK, result)
}
