package main

import (
	"fmt"

	storageprof "github.com/sandeshkamboj/AppManager/subsystem/profile/storage"
	storageprofdiskv "github.com/sandeshkamboj/AppManager/subsystem/profile/storage/diskv"
	storageprofinmem "github.com/sandeshkamboj/AppManager/subsystem/profile/storage/inmem"
	storageprofmysql "github.com/sandeshkamboj/AppManager/subsystem/profile/storage/mysql"

	_ "github.com/go-sql-driver/mysql"
)

type storageConfig struct {
	profile storageprof.Storage
}

func parseStorage(name, dsn string) (*storageConfig, error) {
	switch name {
	case "inmem":
		return &storageConfig{profile: storageprofinmem.New()}, nil
	case "file", "diskv":
		if dsn == "" {
			dsn = "db"
		}
		return &storageConfig{profile: storageprofdiskv.New(dsn)}, nil
	case "mysql":
		prof, err := storageprofmysql.New(storageprofmysql.WithDSN(dsn))
		if err != nil {
			return nil, err
		}
		return &storageConfig{profile: prof}, nil
	}
	return nil, fmt.Errorf("unknown storage: %s", name)
}
