package main

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/koenig-hr/fnf-backend-go/internal/config"
	appHTTP "github.com/koenig-hr/fnf-backend-go/internal/handler/http"
	"github.com/koenig-hr/fnf-backend-go/internal/pkg/database"
	"github.com/koenig-hr/fnf-backend-go/internal/pkg/jwt"
	"github.com/koenig-hr/fnf-backend-go/internal/repository/postgresql"
	authService "github.com/koenig-hr/fnf-backend-go/internal/service/auth"
	employeeService "github.com/koenig-hr/fnf-backend-go/internal/service/employee"
	"github.com/koenig-hr/fnf-backend-go/internal/service/epf"
	settlementService "github.com/koenig-hr/fnf-backend-go/internal/service/settlement"
	"github.com/koenig-hr/fnf-backend-go/internal/service/statement"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	userRepo := postgresql.NewUserRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	settlementRepo := postgresql.NewSettlementRepository(db)

	holidays, err := parseHolidays(cfg.App.HolidayDates)
	if err != nil {
		log.Fatal("Invalid HOLIDAY_DATES entry: ", err)
	}

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	computer := settlementService.NewComputer(epf.NewResolver(nil), holidays)

	authSvc := authService.NewAuthService(userRepo, jwtService)
	employeeSvc := employeeService.NewEmployeeService(employeeRepo, nil)
	settlementSvc := settlementService.NewSettlementService(db, settlementRepo, employeeRepo, computer, statement.NewGenerator())

	authHandler := appHTTP.NewAuthHandler(authSvc)
	employeeHandler := appHTTP.NewEmployeeHandler(employeeSvc)
	settlementHandler := appHTTP.NewSettlementHandler(settlementSvc)

	router := appHTTP.NewRouter(
		jwtService,
		authHandler,
		employeeHandler,
		settlementHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}

func parseHolidays(dates []string) ([]time.Time, error) {
	out := make([]time.Time, 0, len(dates))
	for _, raw := range dates {
		d, err := time.Parse(time.DateOnly, raw)
		if err != nil {
			return nil, fmt.Errorf("%q is not a YYYY-MM-DD date", raw)
		}
		out = append(out, d)
	}
	return out, nil
}
