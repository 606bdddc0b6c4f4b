package services

import (
	"gorm.io/gorm"

	"github.com/acarlier/loto-backend/utils/logger"
)

var (
	database *gorm.DB

	Detection *DetectionService
	Draws     *DrawService
	Games     *GameService
	Winners   *WinnerService
	Cards     *CardService
	Export    *ExportService
	Realtime  *Hub
)

// Init wires the service singletons against the given DB handle.
func Init(db *gorm.DB) {
	database = db

	locks := newGameLocks()
	Detection = &DetectionService{}
	Draws = &DrawService{db: db, detection: Detection, locks: locks}
	Games = &GameService{db: db}
	Winners = &WinnerService{db: db, locks: locks}
	Cards = &CardService{db: db}
	Export = &ExportService{db: db}
	Realtime = NewHub()

	logger.Info("Services initialized")
}
