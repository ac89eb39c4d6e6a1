package create_booking

import (
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/m04kA/SMC-GroundBookingService/internal/domain"
)

const base36Alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// BookingIDGenerator генерирует идентификаторы вида BC + base36(unix ms) + 5 случайных символов base36
// Уникальность гарантирует первичный ключ хранилища, при коллизии usecase запрашивает новый id
type BookingIDGenerator struct {
	now     func() time.Time
	randInt func(n int) int
}

// NewBookingIDGenerator создает генератор на текущем времени и math/rand
func NewBookingIDGenerator() *BookingIDGenerator {
	return &BookingIDGenerator{
		now:     time.Now,
		randInt: rand.Intn,
	}
}

// Generate возвращает новый идентификатор в верхнем регистре
func (g *BookingIDGenerator) Generate() string {
	var sb strings.Builder
	sb.WriteString(strconv.FormatInt(g.now().UnixMilli(), 36))
	for i := 0; i < domain.BookingIDRandomLength; i++ {
		sb.WriteByte(base36Alphabet[g.randInt(len(base36Alphabet))])
	}
	return domain.BookingIDPrefix + strings.ToUpper(sb.String())
}
