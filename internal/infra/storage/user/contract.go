package user

import "github.com/m04kA/SMC-SalonService/pkg/dbmetrics"

type DBExecutor = dbmetrics.DBExecutor
