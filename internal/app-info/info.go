package app_info

// NAME the name of this application
const NAME = "zlink"

// VERSION the current version of this application
const VERSION = "v0.1.0"
