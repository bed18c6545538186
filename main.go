package main

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"smartoffice/internal/automation"
	"smartoffice/internal/config"
	"smartoffice/internal/db"
	"smartoffice/internal/mqtt"
	"smartoffice/internal/redis"
	"smartoffice/internal/scheduler"
	"smartoffice/internal/taskqueue"
	"smartoffice/internal/utils"
	"smartoffice/internal/web"

	MQTT "github.com/eclipse/paho.mqtt.golang"
	"github.com/pion/mdns/v2"
	"github.com/rs/zerolog/log"
	"golang.org/x/net/ipv4"
	"golang.org/x/net/ipv6"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	utils.InitLogging(cfg.LogLevel)

	dbConn, err := db.NewDB(cfg.DBURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer dbConn.Close(context.Background())

	if err := dbConn.Bootstrap(context.Background(), cfg.ParkingSpots); err != nil {
		log.Fatal().Err(err).Msg("failed to bootstrap database")
	}

	redisClient := redis.NewRedisClient(cfg.RedisAddr)
	ruleCache := redis.NewRuleCache(redisClient, dbConn)

	// The MQTT sensor feed is optional; without a broker the engine
	// still serves HTTP triggers and scheduler ticks
	var mqttClient MQTT.Client
	if cfg.MQTTBroker != "" {
		mqttClient, err = mqtt.NewMQTTClient(cfg.MQTTBroker, cfg.MQTTClientID)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to MQTT broker")
		}
	}

	eng := automation.NewEngine(mqttClient, ruleCache, dbConn)
	if err := eng.Start(); err != nil {
		log.Fatal().Err(err).Msg("failed to start engine")
	}

	taskqueue.SetGlobalInstances(eng, dbConn)
	go taskqueue.StartWorkers(cfg.RedisAddr)

	sched := scheduler.NewScheduler()
	if err := sched.AddJob("automation-tick", "* * * * *", func() {
		if err := taskqueue.EnqueueTick(time.Now()); err != nil {
			log.Error().Err(err).Msg("failed to enqueue tick")
		}
	}); err != nil {
		log.Fatal().Err(err).Msg("failed to schedule automation tick")
	}
	if err := sched.AddJob("purge-expired", "* * * * *", func() {
		if err := taskqueue.EnqueuePurge(); err != nil {
			log.Error().Err(err).Msg("failed to enqueue purge")
		}
	}); err != nil {
		log.Fatal().Err(err).Msg("failed to schedule purge")
	}
	sched.Start()

	if cfg.MDNSLocalName != "" {
		go startMDNSServer(cfg.MDNSLocalName)
	}

	webServer := web.NewWebServer(dbConn, redisClient, cfg.JWTSecret, eng, ruleCache)
	go webServer.Start(cfg.HTTPAddr)

	// Graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	eng.Stop()
	sched.Stop()
	taskqueue.StopWorkers()
	log.Info().Msg("shutdown complete")
}

// startMDNSServer advertises the backend on the office LAN so sensor
// devices can find it without hardcoded addresses.
func startMDNSServer(localName string) {
	addr4, err := net.ResolveUDPAddr("udp4", mdns.DefaultAddressIPv4)
	if err != nil {
		log.Warn().Err(err).Msg("failed to resolve UDP4 address for mDNS")
		return
	}
	addr6, err := net.ResolveUDPAddr("udp6", mdns.DefaultAddressIPv6)
	if err != nil {
		log.Warn().Err(err).Msg("failed to resolve UDP6 address for mDNS")
		return
	}

	l4, err := net.ListenUDP("udp4", addr4)
	if err != nil {
		log.Warn().Err(err).Msg("failed to listen on UDP4 for mDNS")
		return
	}
	l6, err := net.ListenUDP("udp6", addr6)
	if err != nil {
		log.Warn().Err(err).Msg("failed to listen on UDP6 for mDNS")
		return
	}

	if _, err := mdns.Server(ipv4.NewPacketConn(l4), ipv6.NewPacketConn(l6), &mdns.Config{
		LocalNames: []string{localName},
	}); err != nil {
		log.Warn().Err(err).Msg("failed to start mDNS server")
		return
	}
	log.Info().Str("name", localName).Msg("advertising backend over mDNS")
}
