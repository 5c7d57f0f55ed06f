package middleware

import (
	"testing"

	"medleave_backend/model"
)

func TestDialector(t *testing.T) {
	for _, driver := range []string{"", "postgres", "mysql", "sqlite"} {
		d, err := Dialector(driver, "dsn")
		if err != nil || d == nil {
			t.Errorf("Dialector(%q) = %v, %v", driver, d, err)
		}
	}
	if _, err := Dialector("oracle", "dsn"); err == nil {
		t.Error("unknown driver accepted")
	}
}

func TestConnectAndMigrateSQLite(t *testing.T) {
	if err := ConnectDB("sqlite", "file:middleware_migrate?mode=memory&cache=shared"); err != nil {
		t.Fatal(err)
	}
	sqlDB, _ := DBConn.DB()
	defer sqlDB.Close()
	if err := MigrateDB(); err != nil {
		t.Fatal(err)
	}
	for _, m := range []interface{}{&model.User{}, &model.Hospital{}, &model.Doctor{}, &model.Nationality{}, &model.Patient{}, &model.Setting{}} {
		if !DBConn.Migrator().HasTable(m) {
			t.Errorf("table for %T missing", m)
		}
	}
	if !DBConn.Migrator().HasColumn(&model.Patient{}, "gsl_code") {
		t.Error("patients.gsl_code missing")
	}
}
