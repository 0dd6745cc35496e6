/*
Package conf extends the builtin 'flag' idea to provide:
- flag values fetched from CLI input OR environment variables (prefix BANDITS_),
- environment script generation with current values of all registered flags,
- ability to extract current values of registered flags (defined with wrappers),
- extra flag kinds e.g. SliceFlag and FloatFlag,
- a predefined flag for logging (logrus integration).
*/
package conf
