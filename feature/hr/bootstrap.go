package hr

import (
	"context"
	"fmt"

	"mini-orm/core/database"
	"mini-orm/core/utils"
)

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS Departments (
		Id INTEGER PRIMARY KEY AUTOINCREMENT,
		Name VARCHAR(50) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS Employees (
		Id INTEGER PRIMARY KEY AUTOINCREMENT,
		FirstName VARCHAR(50) NOT NULL,
		MiddleName VARCHAR(50),
		LastName VARCHAR(50) NOT NULL,
		IsEmployed BOOLEAN NOT NULL,
		DepartmentId INTEGER NOT NULL REFERENCES Departments(Id)
	)`,
	`CREATE TABLE IF NOT EXISTS Projects (
		Id INTEGER PRIMARY KEY AUTOINCREMENT,
		Name VARCHAR(50) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS EmployeesProjects (
		EmployeeId INTEGER NOT NULL REFERENCES Employees(Id),
		ProjectId INTEGER NOT NULL REFERENCES Projects(Id),
		PRIMARY KEY (EmployeeId, ProjectId)
	)`,
}

var mysqlSchema = []string{
	"CREATE TABLE IF NOT EXISTS `Departments` (" +
		"`Id` INT NOT NULL AUTO_INCREMENT PRIMARY KEY, " +
		"`Name` VARCHAR(50) NOT NULL)",
	"CREATE TABLE IF NOT EXISTS `Employees` (" +
		"`Id` INT NOT NULL AUTO_INCREMENT PRIMARY KEY, " +
		"`FirstName` VARCHAR(50) NOT NULL, " +
		"`MiddleName` VARCHAR(50) NULL, " +
		"`LastName` VARCHAR(50) NOT NULL, " +
		"`IsEmployed` BOOLEAN NOT NULL, " +
		"`DepartmentId` INT NOT NULL, " +
		"FOREIGN KEY (`DepartmentId`) REFERENCES `Departments`(`Id`))",
	"CREATE TABLE IF NOT EXISTS `Projects` (" +
		"`Id` INT NOT NULL AUTO_INCREMENT PRIMARY KEY, " +
		"`Name` VARCHAR(50) NOT NULL)",
	"CREATE TABLE IF NOT EXISTS `EmployeesProjects` (" +
		"`EmployeeId` INT NOT NULL, " +
		"`ProjectId` INT NOT NULL, " +
		"PRIMARY KEY (`EmployeeId`, `ProjectId`), " +
		"FOREIGN KEY (`EmployeeId`) REFERENCES `Employees`(`Id`), " +
		"FOREIGN KEY (`ProjectId`) REFERENCES `Projects`(`Id`))",
}

var seedStatements = []string{
	"INSERT INTO Departments (Name) VALUES ('Engineering'), ('Sales')",
	"INSERT INTO Employees (FirstName, MiddleName, LastName, IsEmployed, DepartmentId) VALUES " +
		"('Ada', NULL, 'Lovelace', 1, 1), " +
		"('Alan', 'Mathison', 'Turing', 1, 1), " +
		"('Grace', NULL, 'Hopper', 0, 2)",
	"INSERT INTO Projects (Name) VALUES ('Analytical Engine'), ('Enigma')",
	"INSERT INTO EmployeesProjects (EmployeeId, ProjectId) VALUES (1, 1), (2, 1), (2, 2)",
}

// Bootstrap creates the HR tables when missing and seeds them when empty.
func Bootstrap(ctx context.Context, conn *database.Connection) error {
	ddl := sqliteSchema
	if conn.DB().Dialector.Name() == database.DriverMySQL {
		ddl = mysqlSchema
	}
	for _, stmt := range ddl {
		if _, err := conn.ExecuteNonQuery(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create hr schema: %w", err)
		}
	}

	counts, err := conn.ExecuteScalarQuery(ctx, "SELECT COUNT(*) FROM Departments")
	if err != nil {
		return fmt.Errorf("failed to count departments: %w", err)
	}
	if len(counts) > 0 {
		n, err := utils.ToInt64(counts[0])
		if err != nil {
			return fmt.Errorf("failed to count departments: %w", err)
		}
		if n > 0 {
			return nil
		}
	}

	for _, stmt := range seedStatements {
		if _, err := conn.ExecuteNonQuery(ctx, stmt); err != nil {
			return fmt.Errorf("failed to seed hr data: %w", err)
		}
	}
	return nil
}
