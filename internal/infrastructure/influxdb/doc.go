// Package influxdb records inventory counts in InfluxDB.
//
// It wraps the official influxdb-client-go v2 library: token auth, a ping on
// connect, and the non-blocking batched write API. Every point carries the
// site tag given to Connect.
//
//	client, err := influxdb.Connect(cfg.InfluxDB, cfg.Site.ID)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	client.WriteEntityInventory("sensor", 4)
//
// Writes never block the caller; failures arrive on the SetOnError callback.
package influxdb
