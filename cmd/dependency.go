package cmd

import (
	"context"
	"cudeca-ticket/common/otel"
	"fmt"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
	"log"
	"os"
	"runtime/pprof"
)

func newCfg(name string) *viper.Viper {
	config := viper.New()

	config.SetConfigName(name)
	config.SetConfigType("yaml")
	config.AddConfigPath(".")

	err := config.ReadInConfig()
	if err != nil {
		log.Fatalln(err)
	}

	err = os.Setenv("TZ", config.GetString("server.timezone"))
	if err != nil {
		log.Fatalln(err)
	}

	return config
}

func newDb(cfg *viper.Viper) *pgxpool.Pool {
	username := cfg.GetString("db.user")
	password := cfg.GetString("db.password")
	host := cfg.GetString("db.host")
	port := cfg.GetInt("db.port")
	database := cfg.GetString("db.name")
	maxConn := cfg.GetInt("db.pool.max")
	minConn := cfg.GetInt("db.pool.min")
	timezone := cfg.GetString("server.timezone")

	connString := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?timezone=%s",
		username, password, host, port, database, timezone)

	config, err := pgxpool.ParseConfig(connString)
	if err != nil {
		log.Fatalln(err)
	}

	config.MaxConns = int32(maxConn)
	config.MinConns = int32(minConn)
	config.ConnConfig.Tracer = &otel.PgxCustomTracer{}

	pool, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		log.Fatalln(err)
	}

	err = pool.Ping(context.Background())
	if err != nil {
		log.Fatalln(err)
	}

	return pool
}

func newRedis(cfg *viper.Viper) *redis.Client {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.GetString("redis.addr"),
		Password: cfg.GetString("redis.password"),
		DB:       cfg.GetInt("redis.db"),
	})

	err := rdb.Ping(context.Background()).Err()
	if err != nil {
		log.Fatalln(err)
	}

	return rdb
}

func newNats(cfg *viper.Viper) *nats.Conn {
	conn, err := nats.Connect(cfg.GetString("nats.addr"), nats.Name(cfg.GetString("otel.service_name")))
	if err != nil {
		log.Fatalln(err)
	}

	return conn
}

func newJs(conn *nats.Conn) jetstream.JetStream {
	js, err := jetstream.New(conn)
	if err != nil {
		log.Fatalln(err)
	}

	return js
}

// startProfiling writes <name>-cpu.prof and <name>-mem.prof when env is dev.
// The returned func stops the CPU profile.
func startProfiling(cfg *viper.Viper, name string) func() {
	if cfg.GetString("env") != "dev" {
		return func() {}
	}

	cpu, err := os.Create(name + "-cpu.prof")
	if err != nil {
		log.Fatalf("could not create CPU profile: %v", err)
	}

	err = pprof.StartCPUProfile(cpu)
	if err != nil {
		log.Fatalf("could not start CPU profile: %v", err)
	}

	mem, err := os.Create(name + "-mem.prof")
	if err != nil {
		log.Fatalf("could not create memory profile: %v", err)
	}
	defer mem.Close()

	err = pprof.WriteHeapProfile(mem)
	if err != nil {
		log.Fatalf("could not write memory profile: %v", err)
	}

	return func() {
		pprof.StopCPUProfile()
		cpu.Close()
	}
}
