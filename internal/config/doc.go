// Package config provides configuration parsing for mount.
//
// The configuration is stored in mount.json in the working directory.
// This package handles loading, saving, and validating configuration.
//
// # Configuration File Structure
//
//	{
//	  "document": "index.html",
//	  "container": "#root",
//	  "contentMode": "markup",
//	  "server": {
//	    "host": "localhost",
//	    "port": 3000
//	  },
//	  "metrics": {
//	    "enabled": true,
//	    "namespace": "mount"
//	  },
//	  "tracing": {
//	    "tracerName": "mount"
//	  },
//	  "publish": {
//	    "bucket": "my-site",
//	    "prefix": "pages/",
//	    "region": "us-east-1"
//	  },
//	  "log": {
//	    "level": "info"
//	  }
//	}
//
// # Environment
//
// ApplyEnv overrides fields from MOUNT_* variables, e.g. MOUNT_PORT,
// MOUNT_CONTAINER and MOUNT_PUBLISH_BUCKET.
package config
