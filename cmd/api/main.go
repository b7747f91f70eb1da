package main

import (
	"fmt"
	"net/http"

	"github.com/crestline-hr/timekeeping-backend-go/internal/config"
	"github.com/crestline-hr/timekeeping-backend-go/internal/domain/attendance"
	appHTTP "github.com/crestline-hr/timekeeping-backend-go/internal/handler/http"
	"github.com/crestline-hr/timekeeping-backend-go/internal/pkg/database"
	"github.com/crestline-hr/timekeeping-backend-go/internal/repository/postgresql"
	attendanceService "github.com/crestline-hr/timekeeping-backend-go/internal/service/attendance"
	leaveService "github.com/crestline-hr/timekeeping-backend-go/internal/service/leave"
	reportService "github.com/crestline-hr/timekeeping-backend-go/internal/service/report"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	loc := cfg.Location()

	employeeRepo := postgresql.NewEmployeeRepository(db)
	accrualRepo := postgresql.NewAccrualRepository(db)
	scheduleRepo := postgresql.NewScheduleRepository(db)
	segmentRepo := postgresql.NewSegmentRepository(db)
	leaveTypeRepo := postgresql.NewLeaveTypeRepository(db)
	balanceRepo := postgresql.NewBalanceRepository(db)
	requestRepo := postgresql.NewRequestRepository(db)

	attendanceSvc := attendanceService.NewAttendanceService(
		segmentRepo,
		employeeRepo,
		scheduleRepo,
		attendance.NoHolidays{},
		loc,
	)
	leaveSvc := leaveService.NewLeaveService(
		leaveTypeRepo,
		balanceRepo,
		requestRepo,
		employeeRepo,
		accrualRepo,
	)
	reportSvc := reportService.NewReportService(
		leaveSvc,
		leaveTypeRepo,
		requestRepo,
		employeeRepo,
		scheduleRepo,
		attendanceSvc,
		loc,
	)

	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	leaveHandler := appHTTP.NewLeaveHandler(leaveSvc)
	reportHandler := appHTTP.NewReportHandler(reportSvc)

	router := appHTTP.NewRouter(cfg, attendanceHandler, leaveHandler, reportHandler)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
