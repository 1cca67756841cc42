// Package store provides backends for the external key-value configuration
// store consulted by the config resolver: the OpenWrt UCI command line, a
// YAML file, an HTTP endpoint and an in-memory map. Every backend reports a
// failed lookup as absent; none of them return errors from Get.
package store
