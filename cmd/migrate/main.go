package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/ovaphlow/pitchfork/service-reservation-go/internal/catalog/entity"
	catalogrepo "github.com/ovaphlow/pitchfork/service-reservation-go/internal/catalog/repo"
	hcrepo "github.com/ovaphlow/pitchfork/service-reservation-go/internal/housecleaning/repo"
	moverepo "github.com/ovaphlow/pitchfork/service-reservation-go/internal/move/repo"
	userrepo "github.com/ovaphlow/pitchfork/service-reservation-go/internal/user/repo"
	"github.com/ovaphlow/pitchfork/service-reservation-go/pkg/database"
	"github.com/ovaphlow/pitchfork/service-reservation-go/pkg/utilities"
)

// seeds are the lookup rows; ids follow slice order starting at 1.
var seeds = []struct {
	variant entity.Variant
	labels  []string
}{
	{entity.ReserveCycle, []string{"1회", "매주", "2주마다", "4주마다"}},
	{entity.ServiceDuration, []string{"3시간", "4시간", "8시간"}},
	{entity.ServiceStartingTime, []string{"오전9시", "오후1시"}},
	{entity.ServiceDayOfWeek, []string{"월", "화", "수", "목", "금", "토", "일"}},
	{entity.MoveCategory, []string{"가정이사", "소형이사", "사무실이사"}},
	{entity.Status, []string{"예약완료", "예약취소"}},
}

func main() {
	_ = godotenv.Load()

	lg, err := utilities.Init(utilities.ConfigFromEnv())
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer lg.Sync()
	sugar := lg.Sugar()

	db, err := database.Connect(database.ConfigFromEnv())
	if err != nil {
		sugar.Fatalf("db connect: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	options := catalogrepo.NewOptionRepo(db)
	// order matters: reservations reference users and the lookup tables
	steps := []struct {
		name string
		run  func(context.Context) error
	}{
		{"users", userrepo.NewUserRepo(db).EnsureTable},
		{"lookup tables", options.EnsureTable},
		{"housecleaning_reservations", hcrepo.NewReservationRepo(db).EnsureTable},
		{"move_reservations", moverepo.NewReservationRepo(db).EnsureTable},
	}
	for _, s := range steps {
		if err := s.run(ctx); err != nil {
			sugar.Fatalf("ensure %s: %v", s.name, err)
		}
		sugar.Infow("table ready", "name", s.name)
	}

	for _, s := range seeds {
		if err := options.Seed(ctx, s.variant, s.labels); err != nil {
			sugar.Fatalf("seed %s: %v", s.variant.Table, err)
		}
		sugar.Infow("seeded", "table", s.variant.Table, "rows", len(s.labels))
	}
	sugar.Info("migration complete")
}
