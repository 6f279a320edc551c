package web

const indexHTML = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Poker Clock</title>
    <style>
        body { font-family: sans-serif; background: #0b3d20; color: #f5f5f5; text-align: center; margin: 0; padding: 30px; }
        h1 { margin: 0 0 10px; font-weight: normal; }
        .clock { font-size: 140px; font-variant-numeric: tabular-nums; margin: 10px 0; }
        .clock.warning { color: #ffd54f; }
        .clock.critical { color: #ff5252; }
        .blinds { font-size: 40px; }
        .next { color: #bbb; margin-top: 10px; }
        .banner { background: #1565c0; padding: 10px; font-size: 28px; display: none; }
        .meta { margin: 20px 0; color: #ccc; }
        button { background: #2e7d32; color: white; border: none; padding: 10px 18px; margin: 4px; border-radius: 5px; cursor: pointer; font-size: 16px; }
        button:hover { background: #43a047; }
        select { padding: 8px; }
    </style>
</head>
<body>
    <h1 id="name">Poker Clock</h1>
    <div class="banner" id="banner">BREAK</div>
    <div id="level">Loading...</div>
    <div class="clock" id="clock">--:--</div>
    <div class="blinds" id="blinds"></div>
    <div class="next" id="next"></div>
    <div class="meta" id="meta"></div>
    <div>
        <button onclick="control('start')">Start</button>
        <button onclick="control('pause')">Pause</button>
        <button onclick="control('resume')">Resume</button>
        <button onclick="control('reset')">Reset</button>
        <button onclick="control('previous')">Previous</button>
        <button onclick="control('next')">Next</button>
        <button onclick="control('break-start')">Start Break</button>
        <button onclick="control('break-end')">End Break</button>
        <button id="mute" onclick="toggleMute()">Mute</button>
    </div>
    <div style="margin-top: 20px;">
        <select id="presets"></select>
        <button onclick="loadPreset()">Load Preset</button>
    </div>
    <script>
        let muted = false;

        function blinds(l) {
            let s = l.smallBlind + ' / ' + l.bigBlind;
            if (l.ante > 0) { s += ' (ante ' + l.ante + ')'; }
            return s;
        }

        async function refresh() {
            const res = await fetch('/api/state');
            const s = await res.json();
            muted = s.muted;
            document.getElementById('name').textContent = s.name;
            document.getElementById('mute').textContent = muted ? 'Unmute' : 'Mute';
            document.getElementById('banner').style.display = s.timer.isBreakActive ? 'block' : 'none';
            const clock = document.getElementById('clock');
            clock.textContent = s.clock;
            clock.className = 'clock ' + s.warning;
            if (!s.current) {
                document.getElementById('level').textContent = 'No blind levels configured';
                document.getElementById('blinds').textContent = '';
                document.getElementById('next').textContent = '';
            } else {
                document.getElementById('level').textContent = 'Level ' + s.current.level + ' of ' + s.levelCount;
                document.getElementById('blinds').textContent = blinds(s.current);
                document.getElementById('next').textContent = s.next ? 'Next: ' + blinds(s.next) : 'Final level';
            }
            let meta = s.status + ' | elapsed ' + s.elapsed;
            if (s.breakAvailable && !s.timer.isBreakActive) { meta += ' | break available'; }
            if (s.ended) { meta += ' | tournament clock finished'; }
            document.getElementById('meta').textContent = meta;
        }

        async function control(action, level) {
            const res = await fetch('/api/control', {
                method: 'POST',
                headers: {'Content-Type': 'application/json'},
                body: JSON.stringify({action: action, level: level})
            });
            if (!res.ok) {
                const e = await res.json();
                alert(e.error);
            }
            await refresh();
        }

        function toggleMute() {
            control(muted ? 'unmute' : 'mute');
        }

        async function loadPresets() {
            const res = await fetch('/api/presets');
            const presets = await res.json();
            const sel = document.getElementById('presets');
            sel.innerHTML = '';
            for (const p of presets) {
                const opt = document.createElement('option');
                opt.value = p.id;
                opt.textContent = p.name;
                sel.appendChild(opt);
            }
        }

        async function loadPreset() {
            const id = document.getElementById('presets').value;
            if (!id) { return; }
            await fetch('/api/presets/' + encodeURIComponent(id) + '/load', {method: 'POST'});
            await refresh();
        }

        document.addEventListener('keydown', (e) => {
            if (e.key >= '1' && e.key <= '9') { control('jump', parseInt(e.key) - 1); }
        });

        loadPresets();
        refresh();
        setInterval(refresh, 1000);
    </script>
</body>
</html>`
